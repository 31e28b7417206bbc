package shell

import (
	"strings"
	"testing"
)

func TestDetectShellFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		shellEnv  string
		wantShell ShellType
	}{
		{"Bash from SHELL", "/bin/bash", ShellBash},
		{"Zsh from SHELL", "/usr/bin/zsh", ShellZsh},
		{"Fish from SHELL", "/usr/local/bin/fish", ShellFish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shellEnv)

			result := DetectShell()
			if result.Shell != tt.wantShell {
				t.Errorf("Shell = %v, want %v", result.Shell, tt.wantShell)
			}
			if result.Method != "$SHELL environment variable" {
				t.Errorf("Method = %q", result.Method)
			}
			if result.ShellPath != tt.shellEnv {
				t.Errorf("ShellPath = %q, want %q", result.ShellPath, tt.shellEnv)
			}
		})
	}
}

func TestDetectShellNeverNil(t *testing.T) {
	t.Setenv("SHELL", "/bin/ksh")

	result := DetectShell()
	if result == nil {
		t.Fatal("DetectShell() returned nil")
	}
	if result.Method == "$SHELL environment variable" {
		t.Errorf("ksh should not be accepted from $SHELL")
	}
}

func TestParseShellFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ShellType
	}{
		{"/bin/bash", ShellBash},
		{"/usr/bin/zsh", ShellZsh},
		{"/opt/homebrew/bin/fish", ShellFish},
		{"/bin/BASH", ShellBash},
		{"-zsh", ShellZsh},
		{"zsh", ShellZsh},
		{"/bin/sh", ShellUnknown},
		{"/bin/ksh", ShellUnknown},
		{"", ShellUnknown},
	}

	for _, tt := range tests {
		if got := parseShellFromPath(tt.path); got != tt.want {
			t.Errorf("parseShellFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestShellTypeIsValid(t *testing.T) {
	for _, s := range []ShellType{ShellBash, ShellZsh, ShellFish} {
		if !s.IsValid() {
			t.Errorf("%v should be valid", s)
		}
	}
	if ShellUnknown.IsValid() {
		t.Error("unknown should not be valid")
	}
}

func TestPathHint(t *testing.T) {
	tests := []struct {
		shell ShellType
		dir   string
		want  string
	}{
		{ShellBash, "/home/u/.local/bin", `export PATH="/home/u/.local/bin:$PATH"`},
		{ShellZsh, "/home/u/.local/bin", `export PATH="/home/u/.local/bin:$PATH"`},
		{ShellUnknown, "/opt/bin", `export PATH="/opt/bin:$PATH"`},
		{ShellFish, "/home/u/.local/bin", "fish_add_path /home/u/.local/bin"},
		{ShellFish, "/home/u/my bin", "fish_add_path '/home/u/my bin'"},
	}

	for _, tt := range tests {
		if got := PathHint(tt.shell, tt.dir); got != tt.want {
			t.Errorf("PathHint(%v, %q) = %q, want %q", tt.shell, tt.dir, got, tt.want)
		}
	}
}

func TestRCFile(t *testing.T) {
	if got := RCFile(ShellBash); got != ".bashrc" {
		t.Errorf("RCFile(bash) = %q", got)
	}
	if got := RCFile(ShellFish); !strings.HasSuffix(got, "config.fish") {
		t.Errorf("RCFile(fish) = %q", got)
	}
	if got := RCFile(ShellUnknown); got != "" {
		t.Errorf("RCFile(unknown) = %q, want empty", got)
	}
}

func TestOnPath(t *testing.T) {
	pathEnv := "/usr/local/bin:/usr/bin:/home/u/.local/bin/::/bin"

	tests := []struct {
		dir  string
		want bool
	}{
		{"/usr/bin", true},
		{"/home/u/.local/bin", true},
		{"/home/u/.local/bin/", true},
		{"/home/u/bin", false},
		{"/usr", false},
	}

	for _, tt := range tests {
		if got := OnPath(pathEnv, tt.dir); got != tt.want {
			t.Errorf("OnPath(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}
