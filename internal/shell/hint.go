package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathHint returns a one-line command that puts dir on PATH for the given
// shell.
func PathHint(shell ShellType, dir string) string {
	if shell == ShellFish {
		return fmt.Sprintf("fish_add_path %s", quote(dir))
	}
	return fmt.Sprintf(`export PATH="%s:$PATH"`, strings.ReplaceAll(dir, `"`, `\"`))
}

// RCFile returns the startup file where a PATH change for shell belongs,
// relative to the home directory. It is empty for unknown shells.
func RCFile(shell ShellType) string {
	switch shell {
	case ShellBash:
		return ".bashrc"
	case ShellZsh:
		return ".zshrc"
	case ShellFish:
		return filepath.Join(".config", "fish", "config.fish")
	default:
		return ""
	}
}

// OnPath reports whether dir is one of the entries of pathEnv.
func OnPath(pathEnv, dir string) bool {
	want := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry == "" {
			continue
		}
		if filepath.Clean(entry) == want {
			return true
		}
	}
	return false
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t'\"$") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
