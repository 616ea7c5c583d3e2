package installer

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionUnresolved is returned when neither the local repository nor the
// root package names a version for the package.
var ErrVersionUnresolved = errors.New("can not determine required version")

var (
	// "dev-master#<commit-ref> as 1.9.8"; the last x.y.z token wins
	commitRefPattern = regexp.MustCompile(`(?i)dev-master#(?:.*)(\d\.\d\.\d)`)
	// "1.9.8-2" and any other string carrying an x.y.z token
	patchLevelPattern = regexp.MustCompile(`(\d\.\d\.\d)(?:-\d)?`)
)

// ResolveVersion returns the PhantomJS version to install.
//
// The local repository is searched first, then the root package's require and
// require-dev constraints. The string found is then normalized by
// NormalizeVersionString.
func ResolveVersion(src VersionSource, packageName string) (string, error) {
	version, ok := src.InstalledVersion(packageName)
	if !ok || version == "" {
		version, ok = src.RequiredConstraint(packageName)
		if !ok || version == "" {
			return "", fmt.Errorf("%w of %s", ErrVersionUnresolved, packageName)
		}
	}

	return NormalizeVersionString(version), nil
}

// NormalizeVersionString extracts a release version from a decorated version
// string. It applies, in order: the "dev-master" fallback, the commit-ref
// pattern and the patch-level pattern. The input is returned unchanged if
// none applies.
func NormalizeVersionString(version string) string {
	if version == "dev-master" {
		return FallbackVersion
	}

	if m := commitRefPattern.FindStringSubmatch(version); m != nil {
		return m[1]
	}

	if m := patchLevelPattern.FindStringSubmatch(version); m != nil {
		return m[1]
	}

	return version
}

// NormalizeVersion converts a release version into the four-part form the
// package model carries, e.g. "2.1.1" becomes "2.1.1.0". Strings that are
// not versions are returned as-is.
func NormalizeVersion(version string) string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return version
	}

	normalized := fmt.Sprintf("%d.%d.%d.0", v.Major(), v.Minor(), v.Patch())
	if pre := v.Prerelease(); pre != "" {
		normalized += "-" + pre
	}
	return normalized
}
