package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/pinmap/go/internal/session"
)

func setupServer(services *Services, config *Config) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	registerServices(mux, services)
	setupStaticAssets(mux, config)
	setupHealthCheck(mux)

	handler := session.Middleware(c.Handler(mux))
	handler = hostAllowListMiddleware(config, handler)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	services.Markers.RegisterRoutes(mux)
	services.Gateway.RegisterRoutes(mux)
}

// setupStaticAssets serves the single-page app. The assets are an opaque
// bundle; nothing in them is generated here.
func setupStaticAssets(mux *http.ServeMux, config *Config) {
	if config.Server.StaticDir == "" {
		return
	}
	mux.Handle("/", http.FileServer(http.Dir(config.Server.StaticDir)))
	log.Info().Str("dir", config.Server.StaticDir).Msg("serving static assets")
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}

// hostAllowListMiddleware refuses requests whose Host header is not on the
// configured allow-list.
func hostAllowListMiddleware(config *Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !config.hostAllowed(r.Host) {
			log.Warn().Str("host", r.Host).Msg("refusing request for unlisted host")
			http.Error(w, "host not allowed", http.StatusMisdirectedRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
