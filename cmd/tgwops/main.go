package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	_ "github.com/yaegashi/tgwops/adapters/drivers/provider/aws"
	_ "github.com/yaegashi/tgwops/adapters/drivers/provider/snapshot"
	"github.com/yaegashi/tgwops/config/tgwenv"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/internal/logging"
	"github.com/yaegashi/tgwops/internal/terminal"
)

// Exit codes
const (
	exitFailure = 1
	exitAborted = 130
)

// cliRuntime holds per-process state created in PersistentPreRunE.
type cliRuntime struct {
	env     *tgwenv.Env
	logFile *logging.LogFile
}

func (rt *cliRuntime) close() {
	if rt.logFile != nil {
		_ = rt.logFile.Close()
		rt.logFile = nil
	}
}

type runtimeKey struct{}

func withRuntime(ctx context.Context, rt *cliRuntime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

func runtimeFromContext(ctx context.Context) *cliRuntime {
	if rt, ok := ctx.Value(runtimeKey{}).(*cliRuntime); ok && rt != nil {
		return rt
	}
	return &cliRuntime{}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tgwops",
		Short:   "Transit Gateway attachment CLI",
		Long:    "Attach a VPC to a Transit Gateway, route to a destination subnet and record the result as Terraform.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", os.Getenv(tgwenv.ConfigEnvKey), "Config file (env TGWOPS_CONFIG) (default: .tgwops/config.yml in current or parent directories)")
	pf.String("log-format", "", "Log format (human|text|json) (env TGWOPS_LOG_FORMAT)")
	pf.String("log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	pf.String("log-output", "", `Log output ("-" for stderr, "none", "auto", or a file path)`)

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		rt := runtimeFromContext(c.Context())

		configPath, _ := c.Flags().GetString("config")
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		env, err := tgwenv.Resolve(configPath, workDir)
		if err != nil {
			return err
		}
		rt.env = env

		cfg := &logging.LogConfig{
			Format:        env.Logging.Format,
			Level:         env.Logging.Level,
			Output:        env.Logging.Output,
			Dir:           env.Logging.Dir,
			RetentionDays: env.Logging.RetentionDays,
		}
		if c.Flags().Changed("log-format") {
			cfg.Format, _ = c.Flags().GetString("log-format")
		}
		if v := os.Getenv("TGWOPS_LOG_FORMAT"); v != "" { // env overrides flag
			cfg.Format = v
		}
		if c.Flags().Changed("log-level") {
			cfg.Level, _ = c.Flags().GetString("log-level")
		}
		if c.Flags().Changed("log-output") {
			cfg.Output, _ = c.Flags().GetString("log-output")
		}

		level, err := logging.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		lf, err := logging.NewLogFile(cfg)
		if err != nil {
			return err
		}
		rt.logFile = lf
		l, err := logging.NewWithWriter(cfg.Format, level, lf.Writer())
		if err != nil {
			return err
		}
		if lf.Path != "" && cfg.RetentionDays > 0 && cfg.Dir != "" {
			if err := logging.CleanupOldLogFiles(cfg.Dir, cfg.RetentionDays); err != nil {
				l.Warn(c.Context(), "log cleanup failed", "err", err)
			}
		}

		l = l.With("runId", uuid.NewString())
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdAttach())
	cmd.AddCommand(newCmdInventory())
	return cmd
}

// execute runs root with args under ctx and returns the exit code.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	rt := &cliRuntime{}
	defer rt.close()

	root.SetArgs(args)
	root.SetContext(withRuntime(ctx, rt))
	executed, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	ctx = root.Context()
	if executed != nil && executed.Context() != nil {
		ctx = executed.Context()
	}
	logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	if rt.logFile != nil && !rt.logFile.IsStderr() {
		errOut := root.ErrOrStderr()
		if executed != nil {
			errOut = executed.ErrOrStderr()
		}
		fmt.Fprintf(errOut, "Error: %s\n", err)
	}
	if errors.Is(err, model.ErrOperatorAbort) || errors.Is(err, context.Canceled) {
		return exitAborted
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), terminal.InterruptSignals()...)
	code := execute(ctx, newRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}
