/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JhonW67/ProjectHub/config"
	"github.com/JhonW67/ProjectHub/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the ProjectHub backend server",
	Long: `Starts the ProjectHub backend server. Usage:

	projecthub server
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}

		logger := newLogger(cfg)

		srv, err := server.New(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error().Err(err).Msg("failed to start server")
			os.Exit(1)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				logger.Error().Err(err).Msg("server error")
				os.Exit(1)
			}
		case sig := <-quit:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			if err := srv.Shutdown(); err != nil {
				logger.Error().Err(err).Msg("shutdown failed")
				os.Exit(1)
			}
		}
	},
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
