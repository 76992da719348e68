// Command copilot runs the compliance co-pilot workflows from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"copilot/internal/bootstrap"
	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/logging"
)

var (
	// Global flags
	verbose bool

	logger *zap.Logger
	app    *bootstrap.App
	sess   *domain.Session
)

var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "HealthTech compliance co-pilot",
	Long: `copilot audits requirement documents against healthcare regulations,
drafts test cases and synthetic patient data, and answers regulatory questions.

Hosted services are configured through GCP_PROJECT_ID, GCP_REGION and
DOCAI_PROCESSOR_ID; see "copilot env" for every setting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["bootstrap"] == "skip" {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		} else {
			cfg.Log.Level = "warn"
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		app, err = bootstrap.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		sess, err = app.Sessions.Start(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		scanCmd,
		testCasesCmd,
		synthCmd,
		askCmd,
		chatCmd,
		standardsCmd,
		templatesCmd,
		historyCmd,
		envCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		stop()
		os.Exit(1)
	}
}

// execute runs the root command and always releases the session and app,
// including when a command returns an error.
func execute(ctx context.Context) error {
	defer shutdown()
	return rootCmd.ExecuteContext(ctx)
}

func shutdown() {
	if app != nil {
		if sess != nil {
			_ = app.Sessions.End(context.Background(), sess.ID)
		}
		_ = app.Close()
	}
	if logger != nil {
		_ = logger.Sync()
	}
	app, sess, logger = nil, nil, nil
}
