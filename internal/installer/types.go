package installer

import (
	"time"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
)

const (
	// DefaultPackageName is the Composer package whose version selects the
	// PhantomJS release.
	DefaultPackageName = "jakoch/phantomjs-installer"

	// DisplayName is the name given to the in-memory distribution package.
	DisplayName = "PhantomJS"

	// BinaryName is the executable name without the Windows suffix.
	BinaryName = "phantomjs"

	// FallbackVersion is used when the version is the bare "dev-master" branch.
	FallbackVersion = "2.0.0"
)

// DistType is the archive format of a distribution.
type DistType string

const (
	DistZip DistType = "zip"
	DistTar DistType = "tar"
)

// String returns the string representation of the dist type
func (d DistType) String() string {
	return string(d)
}

// Package describes a distribution archive to download and unpack.
type Package struct {
	Name          string
	Version       string // normalized, e.g. "2.1.1.0"
	PrettyVersion string // as resolved, e.g. "2.1.1"
	TargetDir     string
	DistType      DistType
	DistURL       string
}

// VersionSource exposes the version information of the host project.
type VersionSource interface {
	// InstalledVersion returns the pretty version of an installed package.
	InstalledVersion(name string) (string, bool)
	// RequiredConstraint returns the pretty constraint from require or require-dev.
	RequiredConstraint(name string) (string, bool)
}

// Project is the host project an installation runs in.
type Project interface {
	VersionSource
	// BinDir is the directory binaries are installed into.
	BinDir() string
}

// Resolution is everything an installation decides before touching the network.
type Resolution struct {
	Platform *platform.Info
	Package  *Package
}

// Result contains information about a completed installation
type Result struct {
	Resolution
	BinaryPath  string
	InstallTime time.Duration
}
