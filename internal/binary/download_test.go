package binary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloaderDownloadToFile(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{
			name:       "successful_download",
			statusCode: http.StatusOK,
			body:       "test binary content",
			wantErr:    false,
		},
		{
			name:       "404_not_found",
			statusCode: http.StatusNotFound,
			body:       "not found",
			wantErr:    true,
		},
		{
			name:       "500_server_error",
			statusCode: http.StatusInternalServerError,
			body:       "server error",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != "binstall/test" {
					t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
				}

				w.WriteHeader(tt.statusCode)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			}))
			defer server.Close()

			tmpDir := t.TempDir()
			downloader := NewDownloader(DownloaderConfig{UserAgent: "binstall/test"})

			destPath := filepath.Join(tmpDir, "test-file")
			err := downloader.DownloadToFile(context.Background(), server.URL, destPath)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				if _, statErr := os.Stat(destPath); !os.IsNotExist(statErr) {
					t.Error("destination should not exist after a failed download")
				}
				if _, statErr := os.Stat(destPath + ".tmp"); !os.IsNotExist(statErr) {
					t.Error("temp file should be removed after a failed download")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			content, err := os.ReadFile(destPath)
			if err != nil {
				t.Fatalf("failed to read downloaded file: %v", err)
			}
			if string(content) != tt.body {
				t.Errorf("content mismatch:\ngot:  %q\nwant: %q", string(content), tt.body)
			}
		})
	}
}

func TestDownloaderSingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	downloader := NewDownloader(DownloaderConfig{})
	err := downloader.DownloadToFile(context.Background(), server.URL, filepath.Join(t.TempDir(), "f"))
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want exactly 1", attempts)
	}
}

func TestDownloaderToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"with token", "abc", "Bearer abc"},
		{"without token", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				_, _ = w.Write([]byte("ok"))
			}))
			defer server.Close()

			downloader := NewDownloader(DownloaderConfig{Token: tt.token})
			if err := downloader.DownloadToFile(context.Background(), server.URL, filepath.Join(t.TempDir(), "f")); err != nil {
				t.Fatalf("DownloadToFile() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownloaderContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	downloader := NewDownloader(DownloaderConfig{})
	err := downloader.DownloadToFile(ctx, server.URL, filepath.Join(t.TempDir(), "f"))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDownloaderCreatesNestedDirectories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("content"))
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "a", "b", "c", "file")
	if err := NewDownloader(DownloaderConfig{}).DownloadToFile(context.Background(), server.URL, destPath); err != nil {
		t.Fatalf("DownloadToFile() error: %v", err)
	}
	if _, err := os.Stat(destPath); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestDownloaderRedirectHandling(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("redirected content"))
	}))
	defer target.Close()

	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirect.Close()

	destPath := filepath.Join(t.TempDir(), "file")
	if err := NewDownloader(DownloaderConfig{}).DownloadToFile(context.Background(), redirect.URL, destPath); err != nil {
		t.Fatalf("DownloadToFile() error: %v", err)
	}

	content, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != "redirected content" {
		t.Errorf("content = %q", content)
	}
}

func TestProgressBarOnlyOnTerminal(t *testing.T) {
	d := NewDownloader(DownloaderConfig{Progress: &nopWriter{}})
	if d.progressBar(1024) != nil {
		t.Error("non-file writer should not get a progress bar")
	}

	f, err := os.CreateTemp(t.TempDir(), "progress")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d = NewDownloader(DownloaderConfig{Progress: f})
	if d.progressBar(1024) != nil {
		t.Error("regular file should not get a progress bar")
	}
	if NewDownloader(DownloaderConfig{}).progressBar(-1) != nil {
		t.Error("unknown size should not get a progress bar")
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
