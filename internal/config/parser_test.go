package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
	"github.com/shirou/gopsutil/v4/host"
)

func linuxDetector() platform.Detector {
	return platform.StaticDetector{Info: platform.Info{OS: platform.OSLinux, Bits: 64, Arch: "amd64", Uname: "linux"}}
}

func windowsDetector() platform.Detector {
	return platform.StaticDetector{Info: platform.Info{OS: platform.OSWindows, Bits: 64, Arch: "amd64", Uname: "windows"}}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		detector platform.Detector
		code     string
		want     Config
		wantErr  bool
	}{
		{
			name: "empty file",
			code: ``,
			want: Config{},
		},
		{
			name: "all fields",
			code: `installer = {
				package    = "acme/phantomjs",
				target_dir = "tools/phantomjs",
				bin_dir    = "bin",
				cdn_url    = "https://mirror.example.com/phantomjs",
			}`,
			want: Config{
				PackageName: "acme/phantomjs",
				TargetDir:   "tools/phantomjs",
				BinDir:      "bin",
				CDNURL:      "https://mirror.example.com/phantomjs",
			},
		},
		{
			name:     "platform dependent bin dir on windows",
			detector: windowsDetector(),
			code:     `installer = { bin_dir = platform.is_windows and "bin/win" or "bin" }`,
			want:     Config{BinDir: "bin/win"},
		},
		{
			name:     "platform dependent bin dir on linux",
			detector: linuxDetector(),
			code:     `installer = { bin_dir = platform.is_windows and "bin/win" or "bin" }`,
			want:     Config{BinDir: "bin"},
		},
		{
			name:     "when helper yields nil",
			detector: linuxDetector(),
			code:     `installer = { bin_dir = platform.when(platform.is_macos, "bin/mac") }`,
			want:     Config{},
		},
		{
			name: "values are trimmed",
			code: `installer = { target_dir = "  vendor/phantom  " }`,
			want: Config{TargetDir: "vendor/phantom"},
		},
		{
			name:    "syntax error",
			code:    `installer = {`,
			wantErr: true,
		},
		{
			name:    "installer is not a table",
			code:    `installer = "yes"`,
			wantErr: true,
		},
		{
			name:    "field with wrong type",
			code:    `installer = { target_dir = 42 }`,
			wantErr: true,
		},
		{
			name:    "cdn url without scheme",
			code:    `installer = { cdn_url = "mirror.example.com" }`,
			wantErr: true,
		},
		{
			name:    "package without vendor",
			code:    `installer = { package = "phantomjs" }`,
			wantErr: true,
		},
		{
			name:    "sandbox blocks os",
			code:    `installer = { target_dir = os.getenv("HOME") }`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := tt.detector
			if detector == nil {
				detector = linuxDetector()
			}

			got, err := NewParser(detector).ParseString(context.Background(), tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("error should be a *ParseError, got %T", err)
				}
				return
			}
			if *got != tt.want {
				t.Errorf("ParseString() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseString_WithoutDetector(t *testing.T) {
	cfg, err := NewParser(nil).ParseString(context.Background(), `installer = { bin_dir = "bin" }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if cfg.BinDir != "bin" {
		t.Errorf("BinDir = %q, want bin", cfg.BinDir)
	}

	if _, err := NewParser(nil).ParseString(context.Background(), `x = platform.os`); err == nil {
		t.Error("platform should be undefined without a detector")
	}
}

func TestParseString_PlatformReadOnly(t *testing.T) {
	_, err := NewParser(linuxDetector()).ParseString(context.Background(), `platform.os = "windows"`)
	if err == nil {
		t.Fatal("expected error when modifying platform table")
	}
	if !strings.Contains(err.Error(), "read-only") {
		t.Errorf("error = %v, want read-only message", err)
	}
}

func TestParseString_DetectorError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	detector := platform.NewDetectorWithHostInfo(func(ctx context.Context) (*host.InfoStat, error) {
		return nil, ctx.Err()
	})
	if _, err := NewParser(detector).ParseString(ctx, ``); err == nil {
		t.Error("expected error from cancelled detection")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	ctx := context.Background()
	parser := NewParser(linuxDetector())

	t.Run("missing file yields empty config", func(t *testing.T) {
		cfg, err := parser.LoadProjectConfig(ctx, t.TempDir())
		if err != nil {
			t.Fatalf("LoadProjectConfig() error = %v", err)
		}
		if *cfg != (Config{}) {
			t.Errorf("config = %+v, want empty", *cfg)
		}
	})

	t.Run("reads file from project dir", func(t *testing.T) {
		dir := t.TempDir()
		code := `installer = { target_dir = "tools/phantomjs" }`
		if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(code), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := parser.LoadProjectConfig(ctx, dir)
		if err != nil {
			t.Fatalf("LoadProjectConfig() error = %v", err)
		}
		if cfg.TargetDir != "tools/phantomjs" {
			t.Errorf("TargetDir = %q, want tools/phantomjs", cfg.TargetDir)
		}
	})

	t.Run("parse error carries file name", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultFileName)
		if err := os.WriteFile(path, []byte(`installer = {`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := parser.LoadProjectConfig(ctx, dir)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
		if parseErr.File != path {
			t.Errorf("File = %q, want %q", parseErr.File, path)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("Error() = %q, should mention %q", err.Error(), path)
		}
	})
}

func TestFormatError(t *testing.T) {
	err := &ParseError{
		Message: "Lua syntax error",
		Detail:  "<string>:1: unexpected EOF\nstack traceback:\n\t[G]: ?",
	}

	short := FormatError(err, false)
	if strings.Contains(short, "stack traceback") {
		t.Errorf("non-verbose output should drop traceback: %q", short)
	}
	if !strings.HasPrefix(short, "Lua syntax error: ") {
		t.Errorf("non-verbose output = %q", short)
	}

	if verbose := FormatError(err, true); !strings.Contains(verbose, "stack traceback") {
		t.Errorf("verbose output should keep details: %q", verbose)
	}

	plain := errors.New("plain failure")
	if got := FormatError(plain, false); got != "plain failure" {
		t.Errorf("FormatError(plain) = %q", got)
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{PackageName: "jakoch/phantomjs-installer", TargetDir: "vendor/jakoch/phantomjs", BinDir: "vendor/bin"}
	got := base.Merge(Config{BinDir: "bin", CDNURL: "https://mirror.example.com"})

	want := Config{
		PackageName: "jakoch/phantomjs-installer",
		TargetDir:   "vendor/jakoch/phantomjs",
		BinDir:      "bin",
		CDNURL:      "https://mirror.example.com",
	}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
	if base.BinDir != "vendor/bin" {
		t.Error("Merge should not modify the receiver")
	}
}
