package platform

import (
	"fmt"
	"strings"
)

// archAliases maps lowercase machine names to normalized architectures.
var archAliases = map[string]string{
	"x86_64":  ArchAMD64,
	"amd64":   ArchAMD64,
	"aarch64": ArchARM64,
	"arm64":   ArchARM64,
}

// NormalizeOS converts an OS name to "linux" or "darwin".
// Matching is case-insensitive and by prefix, so "Linux" and
// "Darwin-23.1.0" are accepted.
func NormalizeOS(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(lower, OSLinux):
		return OSLinux, nil
	case strings.HasPrefix(lower, OSDarwin):
		return OSDarwin, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: linux, darwin)", ErrUnsupportedOS, raw)
	}
}

// NormalizeArch converts a machine name to "amd64" or "arm64".
func NormalizeArch(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if arch, ok := archAliases[lower]; ok {
		return arch, nil
	}
	return "", fmt.Errorf("%w: %q (supported: amd64, arm64)", ErrUnsupportedArch, raw)
}

// normalize builds an Info from raw host strings.
func normalize(osRaw, archRaw string) (*Info, error) {
	osName, err := NormalizeOS(osRaw)
	if err != nil {
		return nil, err
	}
	arch, err := NormalizeArch(archRaw)
	if err != nil {
		return nil, err
	}
	return &Info{
		OS:      osName,
		Arch:    arch,
		OSRaw:   osRaw,
		ArchRaw: archRaw,
	}, nil
}
