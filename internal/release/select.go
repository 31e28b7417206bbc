package release

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// checksumManifestMarker identifies the checksum manifest among the assets.
const checksumManifestMarker = "SHA256SUMS"

// Candidates returns the accepted asset file names for name/os/arch, grouped
// by priority tier (index 0 is tier 1).
func Candidates(name, goos, arch string) [][]string {
	dash := fmt.Sprintf("%s-%s-%s", name, goos, arch)
	under := fmt.Sprintf("%s_%s_%s", name, goos, arch)
	return [][]string{
		{dash + ".tar.gz"},
		{under + ".tar.gz"},
		{dash + ".zip"},
		{under + ".zip"},
		{dash, dash + ".exe"},
		{under, under + ".exe"},
		{name, name + ".exe"},
	}
}

// SelectAsset picks the highest-priority asset for the platform. The
// checksum manifest, if any, is attached to the selection.
func SelectAsset(meta *Metadata, name, goos, arch string) (*Selection, error) {
	if meta == nil {
		return nil, fmt.Errorf("release metadata is nil")
	}

	byName := make(map[string]string, len(meta.AssetURLs))
	for _, u := range meta.AssetURLs {
		base := AssetName(u)
		if _, seen := byName[base]; !seen {
			byName[base] = u
		}
	}

	for i, tier := range Candidates(name, goos, arch) {
		for _, candidate := range tier {
			u, ok := byName[candidate]
			if !ok {
				continue
			}
			return &Selection{
				AssetURL:    u,
				AssetName:   candidate,
				ChecksumURL: FindChecksumManifest(meta),
				Pattern:     i + 1,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w for %s/%s in release %s: expected %s-%s-%s.tar.gz, .zip or a bare binary (also with _ separators, or just %q)",
		ErrNoMatchingAsset, goos, arch, meta.TagName, name, goos, arch, name)
}

// FindChecksumManifest returns the first asset URL containing SHA256SUMS,
// or "" when there is none.
func FindChecksumManifest(meta *Metadata) string {
	if meta == nil {
		return ""
	}
	for _, u := range meta.AssetURLs {
		if strings.Contains(u, checksumManifestMarker) {
			return u
		}
	}
	return ""
}

// AssetName returns the final path segment of an asset URL.
func AssetName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	s := rawURL
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return path.Base(s)
}
