package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// DefaultAPIBase is the release API queried when BINSTALL_API_BASE is unset.
	DefaultAPIBase = "https://api.github.com"

	// defaultInstallSubdir is the per-user binary directory below $HOME.
	defaultInstallSubdir = ".local/bin"
)

// ErrUsage marks errors caused by bad or missing command-line input.
var ErrUsage = errors.New("usage error")

// Flags holds the raw flag values as typed by the user.
type Flags struct {
	Repo    string
	Name    string
	Version string
	To      string
}

// RegisterFlags defines the install flags on fs, writing into f.
func RegisterFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.Repo, "repo", "", "GitHub repository `owner/repo` to install from (required)")
	fs.StringVar(&f.Name, "name", "", "binary `name` to install (default: repository name)")
	fs.StringVar(&f.Version, "version", "", "release `tag` to install (default: latest release)")
	fs.StringVar(&f.To, "to", "", "install `directory` (default: ~/.local/bin)")
}

// Options is the configuration for one install run. It is built once and
// passed by value to every stage.
type Options struct {
	Repo       string // owner/name
	Name       string // binary name
	InstallDir string
	Version    string // empty means latest
	Token      string
	APIBase    string
	Debug      bool
}

// Latest reports whether the latest release should be resolved.
func (o Options) Latest() bool {
	return o.Version == ""
}

// Build validates flags, applies defaults and merges the environment.
func Build(f Flags, env Env) (Options, error) {
	repo := strings.TrimSpace(f.Repo)
	if repo == "" {
		return Options{}, fmt.Errorf("%w: --repo is required", ErrUsage)
	}
	repoName, err := repoNamePart(repo)
	if err != nil {
		return Options{}, err
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = repoName
	}
	if strings.ContainsAny(name, `/\`) {
		return Options{}, fmt.Errorf("%w: --name must be a file name, got %q", ErrUsage, name)
	}

	installDir, err := resolveInstallDir(f.To)
	if err != nil {
		return Options{}, err
	}

	apiBase := strings.TrimRight(strings.TrimSpace(env.APIBase), "/")
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	return Options{
		Repo:       repo,
		Name:       name,
		InstallDir: installDir,
		Version:    strings.TrimSpace(f.Version),
		Token:      env.Token,
		APIBase:    apiBase,
		Debug:      env.Debug,
	}, nil
}

// repoNamePart validates "owner/name" and returns name.
func repoNamePart(repo string) (string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: --repo must be owner/repo, got %q", ErrUsage, repo)
	}
	return parts[1], nil
}

// resolveInstallDir expands a leading ~ and falls back to ~/.local/bin.
func resolveInstallDir(to string) (string, error) {
	to = strings.TrimSpace(to)
	if to != "" && to != "~" && !strings.HasPrefix(to, "~/") {
		return filepath.Clean(to), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	switch {
	case to == "":
		return filepath.Join(home, defaultInstallSubdir), nil
	case to == "~":
		return home, nil
	default:
		return filepath.Join(home, to[2:]), nil
	}
}
