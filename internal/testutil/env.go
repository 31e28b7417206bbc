// Package testutil provides utilities for testing binstall in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env describes the isolated environment created by SetupTestEnv.
type Env struct {
	// Home is the fake home directory.
	Home string
	// TmpDir is where workspaces are created during the test.
	TmpDir string
}

// DefaultInstallDir is where binstall installs when --to is not given.
func (e *Env) DefaultInstallDir() string {
	return filepath.Join(e.Home, ".local", "bin")
}

// SetupTestEnv creates isolated directories for each test.
// This ensures binstall tests never interfere with:
// - the user's real ~/.local/bin
// - credentials in the developer's environment
// - the system temp directory
//
// Cleanup is handled by t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Home:   filepath.Join(root, "home"),
		TmpDir: filepath.Join(root, "tmp"),
	}

	for _, dir := range []string{env.Home, env.TmpDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("TMPDIR", env.TmpDir)
	t.Setenv("SHELL", "/bin/bash")

	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN", "BINSTALL_API_BASE", "BINSTALL_DEBUG"} {
		t.Setenv(key, "")
	}

	return env
}

// DirEntries lists the names in dir, failing the test on error.
func DirEntries(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
