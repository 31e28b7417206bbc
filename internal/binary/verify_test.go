package binary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/binstall/internal/testutil"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestVerifyFile(t *testing.T) {
	const assetName = "mytool-linux-amd64.tar.gz"
	const content = "archive bytes"
	goodHash := testutil.SHA256([]byte(content))
	badHash := "0" + goodHash[1:]
	if badHash == goodHash {
		badHash = "1" + goodHash[1:]
	}

	tests := []struct {
		name       string
		manifest   *string
		wantMethod VerificationMethod
		wantErr    error
	}{
		{
			name:       "no manifest",
			manifest:   nil,
			wantMethod: VerificationSkipped,
		},
		{
			name:       "manifest without entry",
			manifest:   ptr(goodHash + "  mytool-darwin-arm64.tar.gz\n"),
			wantMethod: VerificationSkipped,
		},
		{
			name:       "matching hash",
			manifest:   ptr("ffff  other\n" + goodHash + "  " + assetName + "\n"),
			wantMethod: VerificationSHA256,
		},
		{
			name:       "matching uppercase hash",
			manifest:   ptr(strings.ToUpper(goodHash) + "  " + assetName + "\n"),
			wantMethod: VerificationSHA256,
		},
		{
			name:       "binary mode marker",
			manifest:   ptr(goodHash + " *" + assetName + "\n"),
			wantMethod: VerificationSHA256,
		},
		{
			name:       "directory prefix",
			manifest:   ptr(goodHash + "  dist/" + assetName + "\n"),
			wantMethod: VerificationSHA256,
		},
		{
			name:       "mismatched hash",
			manifest:   ptr(badHash + "  " + assetName + "\n"),
			wantMethod: VerificationSHA256,
			wantErr:    ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			assetPath := writeTestFile(t, dir, assetName, content)

			var manifestPath string
			if tt.manifest != nil {
				manifestPath = writeTestFile(t, dir, "SHA256SUMS", *tt.manifest)
			}

			result, err := NewVerifier().VerifyFile(assetPath, assetName, manifestPath)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if result == nil || result.Expected != badHash {
					t.Errorf("result should carry the expected hash, got %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Method != tt.wantMethod {
				t.Errorf("Method = %v, want %v", result.Method, tt.wantMethod)
			}
			if result.Method == VerificationSkipped && result.Reason == "" {
				t.Error("skipped verification should explain why")
			}
		})
	}
}

func TestVerifyFileSkipsHashWithoutEntry(t *testing.T) {
	dir := t.TempDir()
	manifest := writeTestFile(t, dir, "SHA256SUMS", "abc  something-else\n")

	// The asset does not exist; hashing it would fail.
	result, err := NewVerifier().VerifyFile(filepath.Join(dir, "missing"), "mytool", manifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != VerificationSkipped {
		t.Errorf("Method = %v, want skipped", result.Method)
	}
}

func TestCalculateSHA256(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "f", "hello world")

	got, err := calculateSHA256(path)
	if err != nil {
		t.Fatalf("calculateSHA256() error: %v", err)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Errorf("calculateSHA256() = %s, want %s", got, want)
	}
}

func TestCalculateSHA256_NonExistentFile(t *testing.T) {
	if _, err := calculateSHA256("/nonexistent/file"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestFindChecksum(t *testing.T) {
	tests := []struct {
		name             string
		checksumContent  string
		filename         string
		expectedChecksum string
		wantFound        bool
	}{
		{
			name: "simple_match",
			checksumContent: `abc123  file1.tar.gz
def456  file2.tar.gz
789xyz  file3.tar.gz`,
			filename:         "file2.tar.gz",
			expectedChecksum: "def456",
			wantFound:        true,
		},
		{
			name: "with_path_prefix",
			checksumContent: `abc123  ./downloads/file1.tar.gz
def456  /tmp/file2.tar.gz`,
			filename:         "file2.tar.gz",
			expectedChecksum: "def456",
			wantFound:        true,
		},
		{
			name: "no_suffix_match",
			checksumContent: `abc123  foo-mytool.tar.gz
def456  mytool.tar.gz
789xyz  bar-mytool.tar.gz`,
			filename:         "mytool.tar.gz",
			expectedChecksum: "def456",
			wantFound:        true,
		},
		{
			name:             "binary_marker",
			checksumContent:  "abc123 *mytool",
			filename:         "mytool",
			expectedChecksum: "abc123",
			wantFound:        true,
		},
		{
			name: "malformed_lines_ignored",
			checksumContent: `just-one-field

abc123  mytool`,
			filename:         "mytool",
			expectedChecksum: "abc123",
			wantFound:        true,
		},
		{
			name: "not_found",
			checksumContent: `abc123  file1.tar.gz
def456  file2.tar.gz`,
			filename: "file3.tar.gz",
		},
		{
			name:            "empty_file",
			checksumContent: "",
			filename:        "file1.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checksumPath := writeTestFile(t, t.TempDir(), "SHA256SUMS", tt.checksumContent)

			checksum, found, err := findChecksum(checksumPath, tt.filename)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if checksum != tt.expectedChecksum {
				t.Errorf("checksum mismatch:\ngot:  %s\nwant: %s", checksum, tt.expectedChecksum)
			}
		})
	}
}

func TestVerificationMethodString(t *testing.T) {
	if VerificationSkipped.String() != "skipped" || VerificationSHA256.String() != "SHA256" {
		t.Errorf("unexpected strings: %s, %s", VerificationSkipped, VerificationSHA256)
	}
	if VerificationMethod(99).String() != "unknown" {
		t.Error("out-of-range method should be unknown")
	}
}

func ptr(s string) *string { return &s }
