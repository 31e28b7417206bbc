package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
)

// File is an archive member.
type File struct {
	Content string
	Mode    int64
	// Linkname makes the entry a symlink.
	Linkname string
	// Hardlink makes the entry a tar hard link to another entry. Entries
	// are written in name order, so the target must sort first.
	Hardlink string
}

// ScriptBinary returns a shell script that prints "<name> <version>" for
// --version. It stands in for a real release executable.
func ScriptBinary(name, version string) string {
	return fmt.Sprintf("#!/bin/sh\necho \"%s %s\"\n", name, version)
}

// TarGz builds a gzip-compressed tarball from files.
func TarGz(t *testing.T, files map[string]File) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, name := range sortedNames(files) {
		f := files[name]
		header := &tar.Header{Name: name, Mode: f.Mode}
		if header.Mode == 0 {
			header.Mode = 0644
		}
		switch {
		case f.Linkname != "":
			header.Typeflag = tar.TypeSymlink
			header.Linkname = f.Linkname
		case f.Hardlink != "":
			header.Typeflag = tar.TypeLink
			header.Linkname = f.Hardlink
		case strings.HasSuffix(name, "/"):
			header.Typeflag = tar.TypeDir
		default:
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(f.Content))
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tarWriter.Write([]byte(f.Content)); err != nil {
				t.Fatalf("failed to write content for %s: %v", name, err)
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

// Zip builds a zip archive from files.
func Zip(t *testing.T, files map[string]File) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, name := range sortedNames(files) {
		f := files[name]
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		mode := f.Mode
		if mode == 0 {
			mode = 0644
		}
		content := f.Content
		switch {
		case f.Linkname != "":
			header.SetMode(os.ModeSymlink | 0777)
			content = f.Linkname
		case strings.HasSuffix(name, "/"):
			header.SetMode(os.ModeDir | 0755)
		default:
			header.SetMode(os.FileMode(mode))
		}

		w, err := zipWriter.CreateHeader(header)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// SHA256 returns the lowercase hex digest of data.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Manifest renders a SHA256SUMS file for the given assets.
func Manifest(assets map[string][]byte) []byte {
	var b strings.Builder
	for _, name := range sortedNames(assets) {
		fmt.Fprintf(&b, "%s  %s\n", SHA256(assets[name]), name)
	}
	return []byte(b.String())
}

// ReleaseServer fakes the release API and asset downloads for one
// repository. Assets are served from /download/<tag>/<name> and listed in
// the release document in the order given (sorted by name when nil).
type ReleaseServer struct {
	*httptest.Server

	Repo   string
	Tag    string
	Order  []string
	Assets map[string][]byte

	// Requests counts every request the server has seen.
	Requests atomic.Int64
	// LastAuth is the Authorization header of the latest request.
	LastAuth atomic.Value
}

// NewReleaseServer starts a release server. It is closed when the test ends.
func NewReleaseServer(t *testing.T, repo, tag string, order []string, assets map[string][]byte) *ReleaseServer {
	t.Helper()

	if order == nil {
		order = sortedNames(assets)
	}
	rs := &ReleaseServer{Repo: repo, Tag: tag, Order: order, Assets: assets}
	rs.LastAuth.Store("")
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.handle))
	t.Cleanup(rs.Server.Close)
	return rs
}

func (rs *ReleaseServer) handle(w http.ResponseWriter, r *http.Request) {
	rs.Requests.Add(1)
	rs.LastAuth.Store(r.Header.Get("Authorization"))

	prefix := "/repos/" + rs.Repo + "/releases/"
	switch {
	case r.URL.Path == prefix+"latest", r.URL.Path == prefix+"tags/"+rs.Tag:
		rs.writeRelease(w)
	case strings.HasPrefix(r.URL.Path, "/download/"+rs.Tag+"/"):
		name := strings.TrimPrefix(r.URL.Path, "/download/"+rs.Tag+"/")
		data, ok := rs.Assets[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		_, _ = w.Write(data)
	default:
		http.NotFound(w, r)
	}
}

func (rs *ReleaseServer) writeRelease(w http.ResponseWriter) {
	type asset struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	}
	doc := struct {
		TagName string  `json:"tag_name"`
		Assets  []asset `json:"assets"`
	}{TagName: rs.Tag}
	for _, name := range rs.Order {
		doc.Assets = append(doc.Assets, asset{Name: name, URL: rs.AssetURL(name)})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// AssetURL returns the download URL the server advertises for name.
func (rs *ReleaseServer) AssetURL(name string) string {
	return rs.URL + "/download/" + rs.Tag + "/" + name
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
