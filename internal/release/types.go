package release

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoMatchingAsset is returned when no release asset follows any of the
// supported naming conventions for the current platform.
var ErrNoMatchingAsset = errors.New("no matching release asset")

// Metadata is the release document as returned by the API, plus the two
// pieces binstall extracts from it.
type Metadata struct {
	// Body is the raw response body, kept verbatim.
	Body []byte
	// TagName is the release tag. It is informational only.
	TagName string
	// AssetURLs lists every asset download URL in document order.
	AssetURLs []string
}

// Selection is the asset chosen for the current platform.
type Selection struct {
	AssetURL  string
	AssetName string
	// ChecksumURL is the SHA256SUMS manifest URL, empty when the release
	// carries none.
	ChecksumURL string
	// Pattern is the 1-based priority tier that matched.
	Pattern int
}

// StatusError reports a non-2xx response from the release API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	switch e.StatusCode {
	case http.StatusNotFound:
		msg += " (release or repository not found)"
	case http.StatusForbidden, http.StatusTooManyRequests:
		msg += " (rate limited? set GITHUB_TOKEN)"
	case http.StatusUnauthorized:
		msg += " (check GITHUB_TOKEN)"
	}
	return msg
}
