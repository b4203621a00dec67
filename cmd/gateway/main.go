package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/hros/ess-gateway/internal/api/http"
	"github.com/hros/ess-gateway/internal/config"
	"github.com/hros/ess-gateway/internal/database"
	"github.com/hros/ess-gateway/internal/session"
	"github.com/hros/ess-gateway/internal/upstream"
	logging "github.com/hros/ess-gateway/internal/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to the gateway config")
	flag.Parse()

	logger := logging.SetupLogger("gateway.log", slog.LevelInfo)
	slog.SetDefault(logger)

	cfg, err := config.GetConfig(*configPath, logger)
	if err != nil {
		log.Fatal("Failed to load config:", err)
		return
	}

	var sessions session.Store
	if cfg.Sessions.Backend == "redis" {
		rdb, redisErr := database.NewRedisConn(cfg, logger)
		if redisErr != nil {
			log.Fatal("Failed to connect to Redis:", redisErr)
			return
		}
		sessions = session.NewRedisStore(rdb)
	} else {
		sessions = session.NewMemoryStore()
	}

	relay := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	prometheus.MustRegister(httpRequestsTotal)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)

	r.Use(logging.Middleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(ww.Status())).Inc()
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	server := api.NewServer(&api.Deps{
		Config:   cfg,
		Sessions: sessions,
		Upstream: relay,
		Logger:   logger,
	})
	server.Register(r)

	s := &http.Server{
		Handler:           r,
		Addr:              cfg.Server.Host,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	logger.Info("Gateway is starting",
		slog.String("address", cfg.Server.Host),
		slog.String("upstream", cfg.Upstream.BaseURL),
		slog.String("sessions", cfg.Sessions.Backend),
	)
	log.Fatal(s.ListenAndServe())
}
