package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hros/ess-gateway/internal/hrstub"
	logging "github.com/hros/ess-gateway/internal/utils"
)

// hrstub serves the upstream HR API's surface from in-memory sample data, so
// the gateway can be run and demoed without the real backend.
func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	logger := logging.SetupLogger("hrstub.log", slog.LevelInfo)
	slog.SetDefault(logger)

	storage := hrstub.NewStorage()
	if err := storage.SeedDemo(); err != nil {
		log.Fatal("Failed to seed sample data:", err)
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(logger))

	r.Mount("/", hrstub.NewServer(storage, logger).Router())

	logger.Info("HR stub is starting", slog.String("address", *addr))
	log.Fatal(http.ListenAndServe(*addr, r))
}
