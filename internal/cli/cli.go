package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/burstbuild/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error()}
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	logLevel  string
	logFormat string
	envFile   string

	outW io.Writer
	errW io.Writer

	// started is set once a command has validated its input, so later
	// failures are reported as runtime errors rather than usage errors.
	started bool
}

// NewRootCmd builds a fresh command tree writing reports to outW and logs and
// diagnostics to errW.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	root, _ := newRootCmd(outW, errW)
	return root
}

func newRootCmd(outW, errW io.Writer) (*cobra.Command, *options) {
	o := &options{outW: outW, errW: errW}
	defaults := app.DefaultConfig()

	root := &cobra.Command{
		Use:   "burstbuild",
		Short: "Inspect ninja-style build graphs declared in HCL",
		Long: `burstbuild loads build manifests written in HCL into a dependency graph of
files and the commands that produce them, resolves file timestamps, and
computes the command fingerprints a build log compares across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&o.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&o.envFile, "env-file", ".env", "File with BURSTBUILD_* defaults; skipped if absent.")

	root.AddCommand(newInspectCmd(o), newHashCmd(o))
	return root, o
}

// Execute runs the command tree against args. Invalid input is returned as
// an *ExitError with code 2; failures of a started command are returned as is.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI parser started.", "args", args)
	root, o := newRootCmd(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) || o.started {
		return err
	}
	return usageError(err)
}

// config merges environment defaults with explicitly set flags and validates
// the result.
func (o *options) config(cmd *cobra.Command, apply func(*app.Config)) (*app.Config, error) {
	base, err := app.EnvDefaults(o.envFile)
	if err != nil {
		return nil, usageError(err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		base.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		base.LogFormat = o.logFormat
	}
	apply(&base)

	cfg, err := app.NewConfig(base)
	if err != nil {
		return nil, usageError(err)
	}
	slog.Debug("CLI parameter validation complete.", "command", cmd.Name())
	o.started = true
	return cfg, nil
}
