// Package composer reads the parts of a Composer project that the installer
// needs: the root package's require constraints, the locally installed
// packages and the configured bin-dir.
//
// Only composer.json and vendor/composer/installed.json are consulted. The
// lock file is not read; the installed repository is what Composer itself
// reports as the local repository during a lifecycle hook.
package composer

// Default directory names, relative to the project root.
const (
	DefaultVendorDir = "vendor"
	ManifestFile     = "composer.json"
	InstalledFile    = "installed.json"
)

// Environment variables Composer honours for directory overrides.
const (
	EnvVendorDir = "COMPOSER_VENDOR_DIR"
	EnvBinDir    = "COMPOSER_BIN_DIR"
)

// Package is an entry of the local repository.
type Package struct {
	Name          string `json:"name"`
	PrettyVersion string `json:"version"`
}

// Manifest is the subset of composer.json the installer reads.
type Manifest struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
	Config     ManifestConfig    `json:"config"`
}

// ManifestConfig holds the "config" section of composer.json.
type ManifestConfig struct {
	VendorDir string `json:"vendor-dir"`
	BinDir    string `json:"bin-dir"`
}

// installedV2 is the Composer 2 layout of installed.json. Composer 1 writes a
// bare array of packages.
type installedV2 struct {
	Packages []Package `json:"packages"`
}
