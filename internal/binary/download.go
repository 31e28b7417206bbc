package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb"
	"golang.org/x/term"

	"github.com/ZebulonRouseFrantzich/binstall/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// maxRedirects bounds redirect chains (release downloads redirect to a CDN)
	maxRedirects = 10
)

// Downloader fetches release assets. Each call is a single attempt.
type Downloader struct {
	client    *http.Client
	userAgent string
	token     string
	progress  io.Writer
	logger    logging.Logger
}

// DownloaderConfig configures a Downloader.
type DownloaderConfig struct {
	UserAgent string
	// Token is sent as a bearer credential when non-empty.
	Token string
	// Progress receives a byte progress bar when it is a terminal.
	Progress io.Writer
	Logger   logging.Logger
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// NewDownloader creates a new downloader
func NewDownloader(cfg DownloaderConfig) *Downloader {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}
	return &Downloader{
		client:    client,
		userAgent: cfg.UserAgent,
		token:     cfg.Token,
		progress:  cfg.Progress,
		logger:    logging.OrNoop(cfg.Logger),
	}
}

// DownloadToFile downloads url to destPath. The body is written to
// destPath.tmp first and renamed into place only after a complete read.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	d.logger.Debug("downloading", "url", url, "dest", destPath)
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download %s: unexpected status code: %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	var body io.Reader = resp.Body
	if bar := d.progressBar(resp.ContentLength); bar != nil {
		bar.Start()
		body = bar.NewProxyReader(resp.Body)
		defer bar.Finish()
	}

	if _, err := io.Copy(tmpFile, body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// progressBar returns a byte progress bar, or nil when the size is unknown
// or the progress stream is not an interactive terminal.
func (d *Downloader) progressBar(size int64) *pb.ProgressBar {
	if size <= 0 || !isTerminal(d.progress) {
		return nil
	}
	bar := pb.New64(size)
	bar.SetUnits(pb.U_BYTES)
	bar.Output = d.progress
	return bar
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
