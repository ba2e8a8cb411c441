package api

import (
	"net/http"

	"github.com/alexivanou/worldwise/internal/service"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Dependencies collects what the router serves
type Dependencies struct {
	Service        service.ServiceInterface
	Stats          StatsCollector
	DB             Pinger
	BrokerUp       func() bool
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter creates the HTTP handler for the city store
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := NewHandler(deps.Service, logger)
	health := NewHealthHandler(deps.DB, deps.BrokerUp)

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware(logger.Named("http")))

	router.HandleFunc("/health", health.HealthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if deps.Stats != nil {
		statsHandler := NewStatsHandler(deps.Stats, logger)
		router.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	}

	router.HandleFunc("/cities", handler.ListCities).Methods("GET")
	router.HandleFunc("/cities", handler.CreateCity).Methods("POST")
	router.HandleFunc("/cities/{id}", handler.GetCity).Methods("GET")
	router.HandleFunc("/cities/{id}", handler.DeleteCity).Methods("DELETE")

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Enable CORS for the browser map client
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{"Location", headerRequestID},
	})

	return corsHandler.Handler(router)
}
