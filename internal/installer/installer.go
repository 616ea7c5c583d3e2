package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/transaction"
)

// Installer orchestrates version resolution, download and installation of
// the PhantomJS executable.
type Installer struct {
	project     Project
	packageName string
	targetDir   string
	binDir      string
	baseURL     string
	detector    platform.Detector
	downloader  PackageDownloader
	logger      Logger
}

// Config holds configuration for the installer
type Config struct {
	// Project supplies the requested version and the default bin dir
	Project Project
	// PackageName is the package whose version is installed (default: jakoch/phantomjs-installer)
	PackageName string
	// TargetDir is where the distribution is unpacked
	TargetDir string
	// BinDir overrides Project.BinDir()
	BinDir string
	// BaseURL overrides DefaultBaseURL
	BaseURL string
	// Detector reports the host platform
	Detector platform.Detector
	// Downloader fetches and unpacks the distribution
	Downloader PackageDownloader
	// Logger is optional
	Logger Logger
}

// New creates a new installer
func New(config Config) (*Installer, error) {
	if config.Project == nil {
		return nil, fmt.Errorf("Project is required")
	}
	if config.TargetDir == "" {
		return nil, fmt.Errorf("TargetDir is required")
	}
	if config.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}
	if config.Downloader == nil {
		return nil, fmt.Errorf("Downloader is required")
	}

	inst := &Installer{
		project:     config.Project,
		packageName: config.PackageName,
		targetDir:   config.TargetDir,
		binDir:      config.BinDir,
		baseURL:     config.BaseURL,
		detector:    config.Detector,
		downloader:  config.Downloader,
		logger:      config.Logger,
	}

	if inst.packageName == "" {
		inst.packageName = DefaultPackageName
	}
	if inst.binDir == "" {
		inst.binDir = config.Project.BinDir()
	}
	if inst.logger == nil {
		inst.logger = defaultLogger()
	}

	return inst, nil
}

// BinDir returns the directory the executable is installed into.
func (i *Installer) BinDir() string {
	return i.binDir
}

// TargetDir returns the directory the distribution is unpacked into.
func (i *Installer) TargetDir() string {
	return i.targetDir
}

// Resolve determines the version, platform and distribution without
// downloading anything.
func (i *Installer) Resolve(ctx context.Context) (*Resolution, error) {
	version, err := ResolveVersion(i.project, i.packageName)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("resolved version", "package", i.packageName, "version", version)

	info, err := i.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	i.logger.Debug("detected platform", "os", info.OS, "bits", info.Bits, "uname", info.Uname)

	url, err := ResolveURL(info, version, i.baseURL)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Name:          DisplayName,
		Version:       NormalizeVersion(version),
		PrettyVersion: version,
		TargetDir:     i.targetDir,
		DistType:      DistTypeFromURL(url),
		DistURL:       url,
	}

	return &Resolution{Platform: info, Package: pkg}, nil
}

// Install downloads the distribution and copies the executable into the bin
// directory. It holds a lock next to the target directory while it runs.
func (i *Installer) Install(ctx context.Context) (*Result, error) {
	var result *Result

	err := transaction.Run(ctx, filepath.Dir(i.targetDir), transaction.DefaultLockName, func() error {
		var err error
		result, err = i.install(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (i *Installer) install(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	res, err := i.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	i.logger.Info("fetching PhantomJS", "version", res.Package.PrettyVersion, "url", res.Package.DistURL)

	if err := i.downloader.Download(ctx, res.Package, i.targetDir); err != nil {
		return nil, fmt.Errorf("download %s: %w", res.Package.DistURL, err)
	}

	binaryPath, err := CopyBinaryToBinDir(res.Platform, i.targetDir, i.binDir)
	if err != nil {
		return nil, err
	}

	i.logger.Info("installed PhantomJS", "path", binaryPath)

	return &Result{
		Resolution:  *res,
		BinaryPath:  binaryPath,
		InstallTime: time.Since(startTime),
	}, nil
}

// LocateBinary returns the path of the executable inside an unpacked
// distribution. Windows archives up to 1.9.8 keep phantomjs.exe at the root;
// later ones, and all other platforms, use a bin folder.
func LocateBinary(info *platform.Info, targetDir string) string {
	name := ExecutableName(info)

	if info.IsWindows() {
		legacy := filepath.Join(targetDir, name)
		if fi, err := os.Stat(legacy); err == nil && fi.Mode().IsRegular() {
			return legacy
		}
	}

	return filepath.Join(targetDir, "bin", name)
}

// CopyBinaryToBinDir copies the executable from targetDir into binDir,
// creating binDir if needed, and returns the installed path. The file is
// made executable on every platform but Windows.
func CopyBinaryToBinDir(info *platform.Info, targetDir, binDir string) (string, error) {
	if info == nil || !info.IsKnown() {
		return "", ErrUnsupportedPlatform
	}

	if err := os.MkdirAll(binDir, 0755); err != nil {
		return "", fmt.Errorf("create bin dir: %w", err)
	}

	src := LocateBinary(info, targetDir)
	dst := filepath.Join(binDir, ExecutableName(info))

	mode := os.FileMode(0644)
	if !info.IsWindows() {
		mode = 0755
	}

	if err := copyFile(src, dst, mode); err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	if !info.IsWindows() {
		if err := SetExecutable(dst); err != nil {
			return "", err
		}
	}

	return dst, nil
}

// copyFile writes src to a temp file next to dst and renames it into place.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, in); err != nil {
		return fmt.Errorf("copy contents: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
