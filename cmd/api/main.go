package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"helpdesk/internal/config"
	"helpdesk/internal/database"
	"helpdesk/internal/router"
	"helpdesk/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("prod")
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}
	l := logger.New(cfg.Env)

	// db: eager first dial so a dead store shows up in the logs at
	// startup; requests retry lazily through the manager either way
	mgr := database.NewManager(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout+time.Second)
	if _, err := mgr.Database(ctx); err != nil {
		l.Warn().Err(err).Msg("db not reachable yet, will retry on demand")
	}
	cancel()

	// http
	r := router.New(l, mgr, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = mgr.Close(shutdownCtx)
	l.Info().Msg("shutdown complete")
}
