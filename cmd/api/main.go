package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/config"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/container"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/logging"
)

func main() {
	// Load .env file if present; real environment wins otherwise.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Fatal().Err(err).Msg("failed to load configuration")
	}

	c, err := container.New(cfg)
	if err != nil {
		logging.New(logging.Config{}).Fatal().Err(err).Msg("failed to build dependencies")
	}
	log := c.Logger

	gin.SetMode(cfg.Server.GinMode)
	server := c.APIServer()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
		<-errCh
		log.Info().Msg("server stopped")

	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}
}
