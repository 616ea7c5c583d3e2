package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// HostInfoFunc returns host information. It matches host.InfoWithContext.
type HostInfoFunc func(ctx context.Context) (*host.InfoStat, error)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	hostInfo HostInfoFunc
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{hostInfo: host.InfoWithContext}
}

// NewDetectorWithHostInfo creates a detector that reads host information
// from fn instead of the running system.
func NewDetectorWithHostInfo(fn HostInfoFunc) Detector {
	return &RealDetector{hostInfo: fn}
}

// Detect performs platform detection and returns platform information.
//
// The identification string is made of the OS name, kernel version, kernel
// architecture and platform reported by gopsutil. The hostname is left out so
// that a machine called e.g. "winbuild" is not taken for Windows. If gopsutil
// fails, runtime.GOOS is used instead.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		Bits: BitSize(),
		Arch: runtime.GOARCH,
	}

	uname := runtime.GOOS
	if d.hostInfo != nil {
		stat, err := d.hostInfo(ctx)
		if err != nil {
			// Cancellation is a hard failure; anything else falls back to GOOS
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
		} else if stat != nil {
			if s := buildUname(stat.OS, stat.KernelVersion, stat.KernelArch, stat.Platform); s != "" {
				uname = s
			}
		}
	}

	info.Uname = uname
	info.OS = ClassifyOS(uname)

	return info, nil
}

// StaticDetector returns a fixed Info. It is used when the platform is
// forced from the command line.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := s.Info
	if info.Bits == 0 {
		info.Bits = BitSize()
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}
	if info.OS == "" {
		info.OS = ClassifyOS(info.Uname)
	}
	return &info, nil
}
