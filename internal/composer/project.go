package composer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Project is a loaded Composer project.
type Project struct {
	dir       string
	manifest  Manifest
	installed []Package
	vendorDir string
	binDir    string
}

// Load reads composer.json and, when present, the installed repository of
// the project rooted at dir.
func Load(dir string) (*Project, error) {
	if dir == "" {
		return nil, fmt.Errorf("project dir is required")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	manifest, err := readManifest(filepath.Join(absDir, ManifestFile))
	if err != nil {
		return nil, err
	}

	p := NewProject(absDir, *manifest, nil)

	installed, err := readInstalled(filepath.Join(p.vendorDir, "composer", InstalledFile))
	if err != nil {
		return nil, err
	}
	p.installed = installed

	return p, nil
}

// NewProject builds a project from parsed data and resolves its vendor and
// bin directories against dir.
func NewProject(dir string, manifest Manifest, installed []Package) *Project {
	p := &Project{
		dir:       dir,
		manifest:  manifest,
		installed: installed,
	}
	p.vendorDir = p.resolveVendorDir()
	p.binDir = p.resolveBinDir()
	return p
}

// Dir returns the project root.
func (p *Project) Dir() string {
	return p.dir
}

// Manifest returns the parsed composer.json.
func (p *Project) Manifest() Manifest {
	return p.manifest
}

// InstalledPackages returns the local repository.
func (p *Project) InstalledPackages() []Package {
	return p.installed
}

// InstalledVersion returns the pretty version of name in the local
// repository. If the package is listed more than once the last entry wins.
func (p *Project) InstalledVersion(name string) (string, bool) {
	version := ""
	found := false
	for _, pkg := range p.installed {
		if pkg.Name == name {
			version = pkg.PrettyVersion
			found = true
		}
	}
	return version, found && version != ""
}

// RequiredConstraint returns the pretty constraint for name from "require",
// falling back to "require-dev".
func (p *Project) RequiredConstraint(name string) (string, bool) {
	for _, requires := range []map[string]string{p.manifest.Require, p.manifest.RequireDev} {
		if constraint, ok := requires[name]; ok {
			return constraint, true
		}
	}
	return "", false
}

// VendorDir returns the absolute vendor directory.
func (p *Project) VendorDir() string {
	return p.vendorDir
}

// BinDir returns the absolute bin directory binaries are installed into.
func (p *Project) BinDir() string {
	return p.binDir
}

func (p *Project) resolveVendorDir() string {
	dir := os.Getenv(EnvVendorDir)
	if dir == "" {
		dir = p.manifest.Config.VendorDir
	}
	if dir == "" {
		dir = DefaultVendorDir
	}
	return p.abs(dir)
}

// resolveBinDir follows Composer: COMPOSER_BIN_DIR, then config.bin-dir with
// {$vendor-dir} expanded, then <vendor-dir>/bin.
func (p *Project) resolveBinDir() string {
	dir := os.Getenv(EnvBinDir)
	if dir == "" {
		dir = p.manifest.Config.BinDir
	}
	if dir == "" {
		return filepath.Join(p.vendorDir, "bin")
	}
	dir = strings.ReplaceAll(dir, "{$vendor-dir}", p.vendorDir)
	return p.abs(dir)
}

func (p *Project) abs(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(p.dir, dir)
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// readInstalled reads installed.json in either Composer 1 or Composer 2
// format. A missing file yields an empty repository.
func readInstalled(path string) ([]Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read installed repository: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var packages []Package
		if err := json.Unmarshal(data, &packages); err != nil {
			return nil, fmt.Errorf("parse installed repository %s: %w", path, err)
		}
		return packages, nil
	}

	var repo installedV2
	if err := json.Unmarshal(data, &repo); err != nil {
		return nil, fmt.Errorf("parse installed repository %s: %w", path, err)
	}
	return repo.Packages, nil
}
