package binary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is the private temporary directory of one install run. Every
// intermediate file lives in its own subdirectory (asset/, checksums/,
// extract/) so release file names can never collide with each other.
type Workspace struct {
	ID  string
	Dir string
}

// NewWorkspace creates a fresh workspace under the system temp directory.
func NewWorkspace(prefix string) (*Workspace, error) {
	id := uuid.NewString()
	dir, err := os.MkdirTemp("", fmt.Sprintf("%s-%s-", prefix, id[:8]))
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Path joins elem onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}

// ExtractDir returns a fresh, empty extraction directory.
func (w *Workspace) ExtractDir() (string, error) {
	dir := w.Path("extract")
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("reset extract dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create extract dir: %w", err)
	}
	return dir, nil
}

// Cleanup removes the workspace and everything in it. It is safe to call
// more than once.
func (w *Workspace) Cleanup() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
