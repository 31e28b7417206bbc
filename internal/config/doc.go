// Package config builds the immutable configuration for a single install
// run from command-line flags and a handful of environment variables.
//
// # Sources
//
// Flags (parsed by the command with pflag):
//   - --repo owner/name (required)
//   - --name binary name (default: the name part of --repo, so acme/mytool
//     installs mytool)
//   - --version release tag (default: latest release)
//   - --to install directory (default: ~/.local/bin)
//
// Environment (read once through viper):
//   - GITHUB_TOKEN, then GH_TOKEN: bearer token for API and download requests
//   - BINSTALL_API_BASE: release API base URL (default https://api.github.com)
//   - BINSTALL_DEBUG: enables debug log lines
//
// No configuration file is read or written.
//
// # Usage
//
//	var f config.Flags
//	config.RegisterFlags(cmd.Flags(), &f)
//	...
//	opts, err := config.Build(f, config.LoadEnv())
//	if errors.Is(err, config.ErrUsage) {
//	    // print usage, exit 2
//	}
package config
