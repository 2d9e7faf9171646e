package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"stt-relay/internal/app"
	"stt-relay/internal/app/common"
	"stt-relay/internal/config"
)

const shutdownTimeout = 10 * time.Second

var port int

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides the config file)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription relay",
	Long: `Run the transcription relay

- POST /api/transcribe accepts a multipart "file" and an optional x-language header
- The browser client is served on /
- Configuration comes from --config and DEEPGRAM_API_KEY / OPENAI_API_KEY`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := config.LoadServerConfig(configFile, config.GetAPIKeys())
		if err != nil {
			return err
		}
		if port != 0 {
			cfg.Port = port
		}

		logger, err := common.NewLogger(verbose || !cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			return err
		}

		serveErr, err := srv.Start()
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Relay listening on http://%s (provider: %s)\n", srv.Addr(), cfg.Provider.Type)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil {
				return err
			}
		}

		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}
