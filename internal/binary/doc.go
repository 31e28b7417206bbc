// Package binary downloads, verifies, extracts and installs a release
// executable.
//
// # Pipeline
//
// Manager.Install runs the stages in order and stops at the first failure:
//
//  1. resolve release metadata (release.Client)
//  2. select the asset for the platform (release.SelectAsset)
//  3. download the asset into a private workspace
//  4. verify it against SHA256SUMS when the release has one
//  5. extract it (.tar.gz/.tgz, .zip, or a raw executable)
//  6. locate the executable and move it into the install directory
//  7. check PATH and run `<binary> --version`
//
// Nothing is rolled back: a failure leaves the install directory as it was
// because the move is the last fallible step.
//
// # Verification
//
// Verification is by SHA-256 only and is best effort when the release does
// not cooperate:
//   - no manifest: skipped with a warning
//   - manifest without an entry for the asset: skipped with a warning
//   - entry present: the hash must match, otherwise ErrChecksumMismatch
//
// # Workspace
//
// Every intermediate file lives in one temporary directory created per run
// and removed by Manager.Install on every return path. Interrupts cancel
// the context, which aborts the running step and still lets the deferred
// cleanup run.
//
// # Usage
//
//	mgr, err := binary.NewManager(opts, binary.Config{
//	    UserAgent: "binstall/" + version,
//	    Progress:  os.Stderr,
//	    Logger:    logger,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := mgr.Install(ctx, opts, platformInfo)
package binary
