package binary

import (
	"errors"
)

var (
	// ErrChecksumMismatch is returned when the downloaded asset does not
	// match the hash listed for it in the checksum manifest.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrExecutableNotFound is returned when the extracted release contains
	// nothing that looks like the requested executable.
	ErrExecutableNotFound = errors.New("executable not found")
)

// VerificationMethod indicates how a downloaded asset was verified
type VerificationMethod int

const (
	// VerificationSkipped means no hash comparison took place, either
	// because the release has no manifest or the manifest does not list
	// the asset.
	VerificationSkipped VerificationMethod = iota
	// VerificationSHA256 means the asset matched its SHA256SUMS entry
	VerificationSHA256
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationSkipped:
		return "skipped"
	case VerificationSHA256:
		return "SHA256"
	default:
		return "unknown"
	}
}

// VerificationResult contains the outcome of a verification attempt
type VerificationResult struct {
	Method VerificationMethod
	// Reason explains a skipped verification.
	Reason   string
	Expected string
	Actual   string
}

// Result describes a completed installation.
type Result struct {
	Tag         string
	AssetURL    string
	ChecksumURL string
	Verified    VerificationMethod
	// Path is the installed executable.
	Path string
	// Pattern is the naming tier the asset matched.
	Pattern int
}
