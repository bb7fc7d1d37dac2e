package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bond-valuation/internal/api"
	"bond-valuation/internal/config"
	"bond-valuation/internal/logging"
	"bond-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("BOND_CONFIG"), "Optional path to server YAML config")
	flag.Parse()

	cfg, err := config.LoadServer(*cfgPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	format := cfg.Log.Format
	if cfg.Production() {
		format = "json"
	}
	logger := logging.New(cfg.Log.Level, format)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	router := api.NewRouter(cfg, valuation.New(), logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr": srv.Addr,
			"env":  cfg.Server.Env,
		}).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
