// Package config reads the optional Lua configuration of the installer.
//
// The file is evaluated in a sandboxed gopher-lua VM with a read-only
// platform table injected, so settings can depend on the host:
//
//	installer = {
//	    target_dir = "vendor/jakoch/phantomjs",
//	    bin_dir    = platform.is_windows and "bin/win" or "bin",
//	    cdn_url    = "https://mirror.example.com/phantomjs",
//	}
//
// Every field is optional. Empty values leave the defaults in place.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds installer settings from the Lua file, flags or environment.
type Config struct {
	// PackageName is the Composer package whose version is installed
	PackageName string
	// TargetDir is where the distribution is unpacked, relative to the project
	TargetDir string
	// BinDir overrides the project's bin-dir, relative to the project
	BinDir string
	// CDNURL replaces the default download host
	CDNURL string
}

// Validate checks field formats.
func (c *Config) Validate() error {
	if c.PackageName != "" && !strings.Contains(c.PackageName, "/") {
		return fmt.Errorf("package %q must be in vendor/name form", c.PackageName)
	}

	if c.CDNURL != "" {
		u, err := url.Parse(c.CDNURL)
		if err != nil {
			return fmt.Errorf("invalid cdn_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("cdn_url must use http or https, got %q", c.CDNURL)
		}
		if u.Host == "" {
			return fmt.Errorf("cdn_url has no host: %q", c.CDNURL)
		}
	}

	return nil
}

// Merge returns c with every non-empty field of override applied.
func (c Config) Merge(override Config) Config {
	if override.PackageName != "" {
		c.PackageName = override.PackageName
	}
	if override.TargetDir != "" {
		c.TargetDir = override.TargetDir
	}
	if override.BinDir != "" {
		c.BinDir = override.BinDir
	}
	if override.CDNURL != "" {
		c.CDNURL = override.CDNURL
	}
	return c
}
