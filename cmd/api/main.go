package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvloznov/ledger-converter/internal/api/handlers"
	"github.com/dvloznov/ledger-converter/internal/api/middleware"
	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/logger"
	"github.com/dvloznov/ledger-converter/internal/pipeline"
)

func main() {
	port := flag.String("port", envOr("PORT", "8080"), "HTTP server port (or set PORT env)")
	flag.Parse()

	log := logger.New()

	converter := pipeline.New(config.DefaultRegistry(), log)
	convertHandler := handlers.NewConvertHandler(converter, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)

	r.Get("/api/banks", convertHandler.ListBanks)
	r.Post("/api/convert", convertHandler.Convert)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting converter API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
