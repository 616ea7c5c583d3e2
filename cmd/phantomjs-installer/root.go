package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/composer"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/config"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/installer"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/logging"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "PHANTOMJS_INSTALLER"
	// legacyCDNEnv is the variable read by earlier releases of the installer
	legacyCDNEnv = "PHANTOMJS_CDNURL"
)

// Flag and viper keys
const (
	keyProjectDir = "project-dir"
	keyConfig     = "config"
	keyPackage    = "package"
	keyTargetDir  = "target-dir"
	keyBinDir     = "bin-dir"
	keyCDNURL     = "cdn-url"
	keyVerbose    = "verbose"
)

// app carries the process level dependencies of the commands.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	detector platform.Detector
	// downloader is used instead of an HTTPDownloader when set
	downloader installer.PackageDownloader
}

// settings are the flag and environment values after viper resolution.
type settings struct {
	ProjectDir string
	ConfigFile string
	Verbose    bool
	Overrides  config.Config
}

func newRootCmd(a app) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "phantomjs-installer",
		Short: "Install the PhantomJS binary into a Composer project",
		Long: `phantomjs-installer downloads the PhantomJS distribution matching the
version required by a Composer project and the current platform, and copies
the executable into the project's bin directory.

Run it from a post-install-cmd or post-update-cmd script.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(keyProjectDir, ".", "Composer project directory")
	flags.String(keyConfig, "", "Lua config file (default: <project-dir>/"+config.DefaultFileName+")")
	flags.String(keyPackage, "", "Composer package whose version selects the PhantomJS release")
	flags.String(keyTargetDir, "", "directory the distribution is unpacked into")
	flags.String(keyBinDir, "", "directory the executable is copied into")
	flags.String(keyCDNURL, "", "base URL to download distributions from")
	flags.BoolP(keyVerbose, "v", false, "enable debug output")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyCDNURL, envPrefix+"_CDN_URL", legacyCDNEnv)

	rootCmd.AddCommand(
		newInstallCmd(a, v),
		newResolveCmd(a, v),
		newVersionCmd(a),
	)

	return rootCmd
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		ProjectDir: v.GetString(keyProjectDir),
		ConfigFile: v.GetString(keyConfig),
		Verbose:    v.GetBool(keyVerbose),
		Overrides: config.Config{
			PackageName: v.GetString(keyPackage),
			TargetDir:   v.GetString(keyTargetDir),
			BinDir:      v.GetString(keyBinDir),
			CDNURL:      v.GetString(keyCDNURL),
		},
	}
}

// buildInstaller loads the project and the Lua config and applies the
// overrides. Precedence is flags and environment, then the Lua file, then
// the project's composer settings.
func buildInstaller(ctx context.Context, s settings, detector platform.Detector, downloader installer.PackageDownloader, logger installer.Logger) (*installer.Installer, error) {
	projectDir, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	project, err := composer.Load(projectDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded project",
		"dir", project.Dir(), "name", project.Manifest().Name,
		"installed_packages", len(project.InstalledPackages()))

	// Detect once so the config file and the installer see the same platform
	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	detector = platform.StaticDetector{Info: *info}

	parser := config.NewParser(detector)
	var fileCfg *config.Config
	if s.ConfigFile != "" {
		fileCfg, err = parser.ParseFile(ctx, s.ConfigFile)
	} else {
		fileCfg, err = parser.LoadProjectConfig(ctx, projectDir)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %s", config.FormatError(err, s.Verbose))
	}

	defaults := config.Config{
		PackageName: installer.DefaultPackageName,
		TargetDir:   filepath.Join(project.VendorDir(), "jakoch", "phantomjs"),
	}
	cfg := defaults.Merge(*fileCfg).Merge(s.Overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("effective config",
		"package", cfg.PackageName,
		"target_dir", cfg.TargetDir, "bin_dir", cfg.BinDir, "cdn_url", cfg.CDNURL)

	return installer.New(installer.Config{
		Project:     project,
		PackageName: cfg.PackageName,
		TargetDir:   inProject(projectDir, cfg.TargetDir),
		BinDir:      inProject(projectDir, cfg.BinDir),
		BaseURL:     cfg.CDNURL,
		Detector:    detector,
		Downloader:  downloader,
		Logger:      logger,
	})
}

// inProject makes a relative path relative to the project directory.
func inProject(projectDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

func newLogger(a app, verbose bool) installer.Logger {
	return logging.New(a.stderr, verbose)
}
