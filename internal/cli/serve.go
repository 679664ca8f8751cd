package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OntriDS/thegame-sub002/internal/config"
	"github.com/OntriDS/thegame-sub002/internal/server"
	"github.com/OntriDS/thegame-sub002/pkg/logging"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the settlement server",
		Long: `Run the Connect settlement server configured from the environment
(PORT, DB_PATH, JWT_SECRET, TOKEN_DURATION, DEFAULT_EXCHANGE_RATE,
LOG_LEVEL, LOG_FORMAT).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logging.Configure(cfg.LogLevel, cfg.LogFormat)

			if cfg.JWTSecret == config.DevJWTSecret {
				slog.Warn("Using development JWT secret; set JWT_SECRET before exposing this server")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	return cmd
}
