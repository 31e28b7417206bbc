package release

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	tagPattern      = regexp.MustCompile(`"tag_name"\s*:\s*"([^"]*)"`)
	downloadPattern = regexp.MustCompile(`"browser_download_url"\s*:\s*"([^"]+)"`)
)

type releaseDocument struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Parse extracts the tag and asset URLs from a release body. The result
// always carries the body; TagName is empty when none was found.
func Parse(body []byte) *Metadata {
	meta := &Metadata{Body: body}

	var doc releaseDocument
	if err := json.Unmarshal(body, &doc); err == nil {
		meta.TagName = strings.TrimSpace(doc.TagName)
		for _, a := range doc.Assets {
			if a.BrowserDownloadURL != "" {
				meta.AssetURLs = append(meta.AssetURLs, a.BrowserDownloadURL)
			}
		}
		return meta
	}

	if m := tagPattern.FindSubmatch(body); m != nil {
		meta.TagName = strings.TrimSpace(string(m[1]))
	}
	for _, m := range downloadPattern.FindAllSubmatch(body, -1) {
		meta.AssetURLs = append(meta.AssetURLs, string(m[1]))
	}
	return meta
}
