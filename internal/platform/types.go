// Package platform detects the operating system family and bit-width of the
// host, which together select the PhantomJS distribution to download.
//
// Detection works on a uname-style identification string built from gopsutil
// host information. Classification is a case-insensitive substring match so
// that strings such as "Darwin Kernel Version 21.6.0" are recognised the same
// way regardless of which facility produced them.
package platform

import "context"

// OS family constants.
const (
	OSWindows = "windows"
	OSMacOS   = "macos"
	OSLinux   = "linux"
	OSUnknown = "unknown"
)

// Info contains platform detection information.
type Info struct {
	OS    string // "windows", "macos", "linux" or "unknown"
	Bits  int    // 32 or 64
	Arch  string // GOARCH of the running binary
	Uname string // identification string the OS family was derived from
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSMacOS
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsKnown returns false when the OS family could not be classified.
func (i *Info) IsKnown() bool {
	return i.OS != OSUnknown && i.OS != ""
}

// Is64Bit returns true on 64-bit hosts.
func (i *Info) Is64Bit() bool {
	return i.Bits == 64
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
