package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// DetectShell detects the user's shell. $SHELL wins; otherwise the parent
// process name is consulted. The result is ShellUnknown when neither names
// a supported shell.
func DetectShell() *DetectionResult {
	if shell := os.Getenv("SHELL"); shell != "" {
		if shellType := parseShellFromPath(shell); shellType.IsValid() {
			return &DetectionResult{
				Shell:     shellType,
				Method:    "$SHELL environment variable",
				ShellPath: shell,
			}
		}
	}

	if shellType, shellPath := detectFromParentProcess(); shellType.IsValid() {
		return &DetectionResult{
			Shell:     shellType,
			Method:    "parent process",
			ShellPath: shellPath,
		}
	}

	return &DetectionResult{
		Shell:  ShellUnknown,
		Method: "detection failed",
	}
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - -zsh (login shell) -> zsh
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))
	baseName = strings.TrimPrefix(baseName, "-")

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}

// detectFromParentProcess looks at the process that started binstall.
func detectFromParentProcess() (ShellType, string) {
	parent, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return ShellUnknown, ""
	}

	exe, err := parent.Exe()
	if err == nil && exe != "" {
		if shellType := parseShellFromPath(exe); shellType.IsValid() {
			return shellType, exe
		}
	}

	name, err := parent.Name()
	if err != nil {
		return ShellUnknown, ""
	}
	return parseShellFromPath(name), exe
}
