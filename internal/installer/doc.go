// Package installer provisions the PhantomJS executable into a Composer
// project's bin directory.
//
// # Flow
//
// An installation is a straight sequence:
//
//  1. ResolveVersion reads the requested version from the local repository or
//     the root package's require constraints and normalizes decorated strings
//     such as "dev-master#<sha> as 1.9.8" or "1.9.8-2".
//  2. The platform detector classifies the host as windows, macos, linux or
//     unknown, and reports the bit-width.
//  3. ResolveURL maps (platform, version) to the distribution archive.
//  4. A PackageDownloader fetches the archive and extracts it into the target
//     directory.
//  5. The executable is copied into the bin directory and made executable.
//
// There are no retries and no checksum verification. A failure at any step
// aborts the whole installation; re-running it overwrites the installed
// binary.
//
// # Usage
//
//	inst, err := installer.New(installer.Config{
//	    Project:    project,
//	    TargetDir:  filepath.Join(project.VendorDir(), "jakoch", "phantomjs"),
//	    Detector:   platform.NewDetector(),
//	    Downloader: installer.NewHTTPDownloader(),
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := inst.Install(ctx)
package installer
