package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector by probing the running host.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect reads the OS name and the kernel's machine name (the value
// `uname -m` prints) through gopsutil, then normalizes both.
//
// If the host probe fails the Go runtime values are used instead; a
// cancelled context is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	osRaw, archRaw := runtime.GOOS, runtime.GOARCH

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
	}
	if err == nil && hostInfo != nil {
		if hostInfo.OS != "" {
			osRaw = hostInfo.OS
		}
		if hostInfo.KernelArch != "" {
			archRaw = hostInfo.KernelArch
		}
	}

	info, err := normalize(osRaw, archRaw)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	return info, nil
}

// StaticDetector reports a fixed platform. It still normalizes its inputs,
// so unsupported values fail the same way real detection does.
type StaticDetector struct {
	OSRaw   string
	ArchRaw string
}

// NewStaticDetector creates a detector that always reports osRaw/archRaw.
func NewStaticDetector(osRaw, archRaw string) Detector {
	return &StaticDetector{OSRaw: osRaw, ArchRaw: archRaw}
}

// Detect normalizes the configured values.
func (d *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := normalize(d.OSRaw, d.ArchRaw)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	return info, nil
}
