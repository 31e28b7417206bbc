package binary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/ZebulonRouseFrantzich/binstall/internal/logging"
	"github.com/ZebulonRouseFrantzich/binstall/internal/platform"
	"github.com/ZebulonRouseFrantzich/binstall/internal/shell"
)

const (
	// SmokeTestTimeout bounds the post-install `--version` run.
	SmokeTestTimeout = 10 * time.Second

	// locateMaxDepth is how many directory levels Locate searches.
	locateMaxDepth = 2
)

var versionPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// Installer places an extracted executable into the install directory and
// runs the post-install checks.
type Installer struct {
	logger  logging.Logger
	pathEnv func() string
	shell   func() shell.ShellType
}

// NewInstaller creates a new installer
func NewInstaller(logger logging.Logger) *Installer {
	return &Installer{
		logger:  logging.OrNoop(logger),
		pathEnv: func() string { return os.Getenv("PATH") },
		shell:   func() shell.ShellType { return shell.DetectShell().Shell },
	}
}

// Locate finds the executable for name below dir. Candidates are tried in
// order: a file called name, a file called name.exe, then the first
// regular file with any execute bit. The search is lexical and descends at
// most two directory levels.
func Locate(dir, name string) (string, error) {
	matchers := []func(path string, info fs.FileInfo) bool{
		func(path string, _ fs.FileInfo) bool { return filepath.Base(path) == name },
		func(path string, _ fs.FileInfo) bool { return filepath.Base(path) == name+".exe" },
		func(_ string, info fs.FileInfo) bool { return info.Mode().Perm()&0111 != 0 },
	}

	for _, match := range matchers {
		found, err := findFile(dir, match)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("%w: no file named %s, %s.exe or with an execute bit in the release contents", ErrExecutableNotFound, name, name)
}

// findFile returns the first regular file under root, within
// locateMaxDepth levels, that satisfies match.
func findFile(root string, match func(string, fs.FileInfo) bool) (string, error) {
	var found string
	errFound := errors.New("found")

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		depth := 0
		if rel != "." {
			depth = len(strings.Split(rel, string(os.PathSeparator)))
		}

		if d.IsDir() {
			if depth >= locateMaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if match(path, info) {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("search %s: %w", root, err)
	}
	return found, nil
}

// Install marks src executable and moves it to dir/name, creating dir when
// needed. On macOS the quarantine attribute is cleared afterwards.
func (i *Installer) Install(src, dir, name string, info *platform.Info) (string, error) {
	if err := SetExecutable(src); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create install dir: %w", err)
	}

	dest := filepath.Join(dir, name)
	if err := moveFile(src, dest); err != nil {
		return "", fmt.Errorf("move %s to %s: %w", filepath.Base(src), dest, err)
	}

	if info != nil && info.IsMacOS() {
		if err := clearQuarantine(dest); err != nil {
			i.logger.Debug("quarantine attribute not cleared", "path", dest, "err", err)
		}
	}

	return dest, nil
}

// moveFile renames src to dst, falling back to copy and remove when the two
// live on different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	tmp := dst + ".tmp"
	if err := copyFile(src, tmp, 0755); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Remove(src)
}

// CheckPath warns when dir is not on PATH and prints the command that
// would add it. It reports whether dir was found.
func (i *Installer) CheckPath(dir string) bool {
	if shell.OnPath(i.pathEnv(), dir) {
		return true
	}

	sh := i.shell()
	i.logger.Warn(fmt.Sprintf("%s is not on your PATH", dir))
	if rc := shell.RCFile(sh); rc != "" {
		i.logger.Warn(fmt.Sprintf("add it with: %s  (e.g. in ~/%s)", shell.PathHint(sh, dir), rc))
	} else {
		i.logger.Warn(fmt.Sprintf("add it with: %s", shell.PathHint(sh, dir)))
	}
	return false
}

// SmokeTest runs `path --version`. Failures are logged as warnings; tools
// without a version flag are common. When both the output and tag carry a
// semantic version and they differ, an informational note is logged.
func (i *Installer) SmokeTest(ctx context.Context, path, tag string) bool {
	ctx, cancel := context.WithTimeout(ctx, SmokeTestTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		i.logger.Warn("installed binary did not answer --version", "path", path, "err", err)
		return false
	}

	i.logger.Info("smoke test passed", "output", firstLine(output))

	if reported, ok := parseVersion(output); ok {
		if expected, ok := parseVersion(tag); ok && !reported.Equal(expected) {
			i.logger.Info("reported version differs from release tag", "reported", reported.String(), "tag", tag)
		}
	}
	return true
}

func parseVersion(s string) (*semver.Version, bool) {
	m := versionPattern.FindString(s)
	if m == "" {
		return nil, false
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, false
	}
	return v, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
