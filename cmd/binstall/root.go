package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/binstall/internal/binary"
	"github.com/ZebulonRouseFrantzich/binstall/internal/config"
	"github.com/ZebulonRouseFrantzich/binstall/internal/logging"
	"github.com/ZebulonRouseFrantzich/binstall/internal/platform"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// streams are the process output streams. Stderr carries every log line
// and the progress bar; Stdout only gets help text and the installed path.
type streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// run executes one binstall invocation and returns the process exit code.
func run(ctx context.Context, args []string, s streams, detector platform.Detector) int {
	var logger logging.Logger = logging.NewConsole(s.Stderr, false)
	cmd := newRootCmd(s, detector, &logger)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrUsage):
		logger.Error(err.Error())
		fmt.Fprintln(s.Stderr)
		fmt.Fprint(s.Stderr, cmd.UsageString())
		return exitUsage
	case ctx.Err() != nil:
		logger.Error("interrupted")
		return exitFatal
	default:
		logger.Error(err.Error())
		return exitFatal
	}
}

// newRootCmd builds the binstall command. The logger is replaced once the
// environment has been read so BINSTALL_DEBUG takes effect.
func newRootCmd(s streams, detector platform.Detector, logger *logging.Logger) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "binstall --repo owner/repo [--name name] [--version tag] [--to dir]",
		Short: "Install a binary from a GitHub release",
		Long: `binstall downloads the release asset matching this machine from a GitHub
repository, checks it against the release's SHA256SUMS when there is one,
and installs the executable into a bin directory.

--name defaults to the repository part of --repo (acme/mytool installs
mytool); --to defaults to ~/.local/bin.

Assets are matched by name, in this order:
  <name>-<os>-<arch>.tar.gz   <name>_<os>_<arch>.tar.gz
  <name>-<os>-<arch>.zip      <name>_<os>_<arch>.zip
  <name>-<os>-<arch>          <name>_<os>_<arch>
  <name>

Environment:
  GITHUB_TOKEN, GH_TOKEN   token for private repositories and rate limits
  BINSTALL_API_BASE        release API base URL
  BINSTALL_DEBUG           print debug output`,
		Example: `  binstall --repo acme/mytool
  binstall --repo acme/mytool --version v1.2.3 --to /usr/local/bin`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unexpected argument %q", config.ErrUsage, args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.LoadEnv()
			opts, err := config.Build(flags, env)
			if err != nil {
				return err
			}

			log := logging.NewConsole(s.Stderr, opts.Debug)
			*logger = log

			return install(cmd.Context(), opts, s, detector, log)
		},
	}

	cmd.SetOut(s.Stdout)
	cmd.SetErr(s.Stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrUsage, err)
	})
	cmd.CompletionOptions.DisableDefaultCmd = true

	config.RegisterFlags(cmd.Flags(), &flags)

	return cmd
}

func install(ctx context.Context, opts config.Options, s streams, detector platform.Detector, log logging.Logger) error {
	info, err := detector.Detect(ctx)
	if err != nil {
		return err
	}
	log.Debug("platform detected", "os", info.OS, "arch", info.Arch, "raw", info.OSRaw+"/"+info.ArchRaw)

	mgr, err := binary.NewManager(opts, binary.Config{
		UserAgent: "binstall/" + Version,
		Progress:  s.Stderr,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("create binary manager: %w", err)
	}

	result, err := mgr.Install(ctx, opts, info)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.Stdout, result.Path)
	return nil
}
