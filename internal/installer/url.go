package installer

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
)

const (
	// DefaultBaseURL hosts releases from 1.9.5 on.
	DefaultBaseURL = "https://bitbucket.org/ariya/phantomjs/downloads"
	// LegacyBaseURL hosted releases up to 1.9.2. It can be selected through
	// the cdn_url setting.
	LegacyBaseURL = "https://phantomjs.googlecode.com/files"
)

// ErrUnsupportedPlatform is returned when no distribution exists for the host.
var ErrUnsupportedPlatform = errors.New("the installer could not select a PhantomJS package for this OS; " +
	"please install PhantomJS manually into the bin folder of your project")

// ResolveURL returns the download URL of the distribution for info.
// An empty baseURL selects DefaultBaseURL.
func ResolveURL(info *platform.Info, version, baseURL string) (string, error) {
	if info == nil {
		return "", fmt.Errorf("platform info is required")
	}

	name, err := archiveName(info, version)
	if err != nil {
		return "", err
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return strings.TrimRight(baseURL, "/") + "/" + name, nil
}

// archiveName returns the release file name for info.
//
//	windows  phantomjs-{version}-windows.zip
//	linux    phantomjs-{version}-linux-i686.tar.bz2 / -linux-x86_64.tar.bz2
//	macos    phantomjs-{version}-macosx.zip
func archiveName(info *platform.Info, version string) (string, error) {
	switch info.OS {
	case platform.OSWindows:
		return fmt.Sprintf("phantomjs-%s-windows.zip", version), nil
	case platform.OSLinux:
		switch info.Bits {
		case 32:
			return fmt.Sprintf("phantomjs-%s-linux-i686.tar.bz2", version), nil
		case 64:
			return fmt.Sprintf("phantomjs-%s-linux-x86_64.tar.bz2", version), nil
		}
	case platform.OSMacOS:
		return fmt.Sprintf("phantomjs-%s-macosx.zip", version), nil
	}

	return "", fmt.Errorf("%w (os: %s, bits: %d)", ErrUnsupportedPlatform, info.OS, info.Bits)
}

// DistTypeFromURL infers the archive type from the URL's file extension.
func DistTypeFromURL(url string) DistType {
	if strings.EqualFold(path.Ext(url), ".zip") {
		return DistZip
	}
	return DistTar
}

// ExecutableName returns the file name of the installed executable.
func ExecutableName(info *platform.Info) string {
	if info.IsWindows() {
		return BinaryName + ".exe"
	}
	return BinaryName
}
