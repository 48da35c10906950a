package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Dicecells/internal/adapters/http"
	"github.com/dkeye/Dicecells/internal/adapters/events"
	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/app/orch"
	"github.com/dkeye/Dicecells/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	var sink app.EventSink = app.NopSink{}
	if cfg.NATSURL != "" {
		ns, err := events.Dial(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Error().Err(err).Msg("event feed disabled")
		} else {
			defer ns.Close()
			sink = ns
		}
	}

	o := &orch.Orchestrator{
		Rooms:   app.NewRoomRegistry(cfg.MaxRoomPlayers),
		Gateway: app.NewGateway(),
		Policy:  app.SimplePolicy{},
		Events:  sink,
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Dicecells server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Int("rooms", o.Rooms.Len()).Msg("Server exited gracefully")
}

// setupLogger switches to JSON output in release mode and applies log_level.
func setupLogger(cfg *config.Config) {
	if cfg.Mode == config.ModeRelease {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
		return
	}
	zerolog.SetGlobalLevel(level)
}
