package binary

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Verifier checks downloaded assets against a SHA256SUMS manifest
type Verifier struct{}

// NewVerifier creates a new verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyFile checks assetPath against the manifest at checksumPath.
//
// An empty checksumPath, or a manifest that does not list assetName,
// yields VerificationSkipped with no error. A listed but different hash
// yields ErrChecksumMismatch.
func (v *Verifier) VerifyFile(assetPath, assetName, checksumPath string) (*VerificationResult, error) {
	if checksumPath == "" {
		return &VerificationResult{
			Method: VerificationSkipped,
			Reason: "release has no SHA256SUMS manifest",
		}, nil
	}

	expected, found, err := findChecksum(checksumPath, assetName)
	if err != nil {
		return nil, fmt.Errorf("read checksum manifest: %w", err)
	}
	if !found {
		return &VerificationResult{
			Method: VerificationSkipped,
			Reason: fmt.Sprintf("SHA256SUMS has no entry for %s", assetName),
		}, nil
	}

	actual, err := calculateSHA256(assetPath)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	result := &VerificationResult{
		Method:   VerificationSHA256,
		Expected: expected,
		Actual:   actual,
	}
	if !strings.EqualFold(actual, expected) {
		return result, fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, assetName, actual, expected)
	}
	return result, nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum looks up filename in a sha256sum-style manifest:
//
//	<hex>  <name>
//	<hex> *<name>
//
// The name field matches when, after dropping a binary-mode "*" and any
// directory prefix, it equals filename exactly.
func findChecksum(checksumPath, filename string) (string, bool, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", false, fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		name := strings.TrimPrefix(parts[1], "*")
		if name == filename || filepath.Base(name) == filename {
			return parts[0], true, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("scan checksum file: %w", err)
	}

	return "", false, nil
}
