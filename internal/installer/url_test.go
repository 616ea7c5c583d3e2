package installer

import (
	"errors"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		info    *platform.Info
		version string
		baseURL string
		want    string
		wantErr bool
	}{
		{
			name:    "windows 64",
			info:    &platform.Info{OS: platform.OSWindows, Bits: 64},
			version: "2.1.1",
			want:    "https://bitbucket.org/ariya/phantomjs/downloads/phantomjs-2.1.1-windows.zip",
		},
		{
			name:    "windows 32",
			info:    &platform.Info{OS: platform.OSWindows, Bits: 32},
			version: "1.9.8",
			want:    "https://bitbucket.org/ariya/phantomjs/downloads/phantomjs-1.9.8-windows.zip",
		},
		{
			name:    "linux 32",
			info:    &platform.Info{OS: platform.OSLinux, Bits: 32},
			version: "2.1.1",
			want:    "https://bitbucket.org/ariya/phantomjs/downloads/phantomjs-2.1.1-linux-i686.tar.bz2",
		},
		{
			name:    "linux 64",
			info:    &platform.Info{OS: platform.OSLinux, Bits: 64},
			version: "2.1.1",
			want:    "https://bitbucket.org/ariya/phantomjs/downloads/phantomjs-2.1.1-linux-x86_64.tar.bz2",
		},
		{
			name:    "macos",
			info:    &platform.Info{OS: platform.OSMacOS, Bits: 64},
			version: "2.0.0",
			want:    "https://bitbucket.org/ariya/phantomjs/downloads/phantomjs-2.0.0-macosx.zip",
		},
		{
			name:    "legacy host",
			info:    &platform.Info{OS: platform.OSMacOS, Bits: 64},
			version: "1.9.2",
			baseURL: LegacyBaseURL,
			want:    "https://phantomjs.googlecode.com/files/phantomjs-1.9.2-macosx.zip",
		},
		{
			name:    "mirror with trailing slash",
			info:    &platform.Info{OS: platform.OSLinux, Bits: 64},
			version: "2.1.1",
			baseURL: "https://mirror.example.com/phantomjs/",
			want:    "https://mirror.example.com/phantomjs/phantomjs-2.1.1-linux-x86_64.tar.bz2",
		},
		{
			name:    "unknown os",
			info:    &platform.Info{OS: platform.OSUnknown, Bits: 64},
			version: "2.1.1",
			wantErr: true,
		},
		{
			name:    "linux with unsupported width",
			info:    &platform.Info{OS: platform.OSLinux, Bits: 16},
			version: "2.1.1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.info, tt.version, tt.baseURL)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedPlatform) {
					t.Fatalf("ResolveURL() error = %v, want ErrUnsupportedPlatform", err)
				}
				if !strings.Contains(err.Error(), "manually") {
					t.Errorf("error should tell the user to install manually: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveURL_NilPlatform(t *testing.T) {
	if _, err := ResolveURL(nil, "2.1.1", ""); err == nil {
		t.Error("expected error for nil platform info")
	}
}

func TestDistTypeFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want DistType
	}{
		{"https://example.com/phantomjs-2.1.1-windows.zip", DistZip},
		{"https://example.com/phantomjs-2.1.1-macosx.ZIP", DistZip},
		{"https://example.com/phantomjs-2.1.1-linux-x86_64.tar.bz2", DistTar},
		{"https://example.com/phantomjs-2.1.1-linux-x86_64.tar.gz", DistTar},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := DistTypeFromURL(tt.url); got != tt.want {
				t.Errorf("DistTypeFromURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecutableName(t *testing.T) {
	if got := ExecutableName(&platform.Info{OS: platform.OSWindows}); got != "phantomjs.exe" {
		t.Errorf("windows ExecutableName() = %q", got)
	}
	if got := ExecutableName(&platform.Info{OS: platform.OSLinux}); got != "phantomjs" {
		t.Errorf("linux ExecutableName() = %q", got)
	}
}
