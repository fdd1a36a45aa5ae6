package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"bytesize/internal/app"
	"bytesize/internal/config"
)

const (
	ExitOK          = 0
	ExitCLIError    = 1
	ExitConfigError = 2
	ExitScanError   = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// state is shared by subcommands once the root has loaded configuration.
type state struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func (s *state) load(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	s.logger = app.NewLogger(cmd.ErrOrStderr(), level)
	cfg, err := config.LoadFromEnvOrFile(s.configPath)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	s.cfg = cfg
	s.logger.Debug("configuration loaded", "path", s.configPath, "format", cfg.Display.Format.String())
	return nil
}

// NewRootCmd builds the bytesize command tree.
func NewRootCmd() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "bytesize",
		Short:         "Render and parse human-readable byte sizes",
		Long:          "bytesize converts byte counts to text such as \"1.5 KiB\" or \"12.3 MB\" and back, sums directory usage, and serves both conversions over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&st.configPath, "config", "c", "", "Path to YAML configuration")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newRenderCmd(st))
	root.AddCommand(newParseCmd(st))
	root.AddCommand(newDuCmd(st))
	root.AddCommand(newServeCmd(st))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
