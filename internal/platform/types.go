// Package platform detects the operating system and machine architecture
// binstall is running on and normalizes them to the identifiers used in
// release asset names.
//
// Only linux and darwin on amd64 and arm64 are supported. Anything else is
// reported as an error instead of falling back to a guess.
package platform

import (
	"context"
	"errors"
)

// Normalized OS identifiers.
const (
	OSLinux  = "linux"
	OSDarwin = "darwin"
)

// Normalized architecture identifiers.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

var (
	// ErrUnsupportedOS is returned for any OS name that does not normalize
	// to linux or darwin.
	ErrUnsupportedOS = errors.New("unsupported operating system")

	// ErrUnsupportedArch is returned for any machine name that does not
	// normalize to amd64 or arm64.
	ErrUnsupportedArch = errors.New("unsupported architecture")
)

// Info contains platform detection information.
type Info struct {
	OS      string // "linux" or "darwin"
	Arch    string // "amd64" or "arm64"
	OSRaw   string // OS name as reported by the host (e.g. "Linux", "Darwin")
	ArchRaw string // machine name as reported by the host (e.g. "x86_64")
}

// String returns "os/arch".
func (i *Info) String() string {
	return i.OS + "/" + i.Arch
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSDarwin
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
