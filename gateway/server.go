package gateway

import (
	"net/http"

	"go-ledger-api/config"
	"go-ledger-api/middleware"

	"github.com/rs/cors"
)

// NewHandler wires the gateway with its edge middleware. The chain runs
// request id, access log, CORS, rate limit, then routing.
func NewHandler(cfg config.GatewayConfig, verifier middleware.TokenVerifier, limiter middleware.Limiter) (http.Handler, error) {
	gw, err := New(cfg.Routes, verifier)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"gateway is healthy"}`))
	})
	mux.Handle("/", middleware.RateLimit(limiter, cfg.RateLimit)(gw))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Refresh-Token", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID, "Retry-After"},
	})

	return middleware.RequestID(middleware.AccessLog(c.Handler(mux))), nil
}
