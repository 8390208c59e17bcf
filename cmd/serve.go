package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnlam/staff-matcher/internal/logger"
	"github.com/dnlam/staff-matcher/internal/recommend"
	"github.com/dnlam/staff-matcher/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultPort     = "8080"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching pipeline over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	m, err := buildMatcher(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the matching pipeline", zap.Error(err))
	}

	srv := server.New(func(ctx context.Context, description string) (*recommend.Outcome, error) {
		return m.match(ctx, description, false)
	}, logger)

	port := defaultPort
	if config.Server != nil && config.Server.Port != "" {
		port = config.Server.Port
	}

	logger.Info("starting the staff-matcher http server",
		zap.String("version", version),
		zap.String("port", port),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}
