package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/alexivanou/worldwise/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ListCities handles GET /cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		h.internalError(w, r, "Error listing cities", err)
		return
	}
	if cities == nil {
		cities = []model.City{}
	}
	h.writeJSON(w, r, http.StatusOK, cities)
}

// GetCity handles GET /cities/{id}
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	id, ok := cityID(w, r)
	if !ok {
		return
	}

	city, err := h.service.GetCity(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "city not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, "Error getting city", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, city)
}

// CreateCity handles POST /cities
func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&draft); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	city, err := h.service.CreateCity(r.Context(), draft)
	if errors.Is(err, service.ErrInvalidDraft) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.internalError(w, r, "Error creating city", err)
		return
	}

	citiesCreated.Inc()
	w.Header().Set("Location", "/cities/"+strconv.Itoa(city.ID))
	h.writeJSON(w, r, http.StatusCreated, city)
}

// DeleteCity handles DELETE /cities/{id}
func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, ok := cityID(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteCity(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "city not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, "Error deleting city", err)
		return
	}

	citiesDeleted.Inc()
	h.writeJSON(w, r, http.StatusOK, struct{}{})
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles GET /health
type HealthHandler struct {
	db       Pinger
	brokerUp func() bool
}

func NewHealthHandler(db Pinger, brokerUp func() bool) *HealthHandler {
	return &HealthHandler{db: db, brokerUp: brokerUp}
}

// HealthCheck handles GET /health. Only a database failure yields 503.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			checks["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	switch {
	case h.brokerUp == nil:
		checks["events"] = "not configured"
	case h.brokerUp():
		checks["events"] = "ok"
	default:
		checks["events"] = "disconnected"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(checks)
}

func cityID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "invalid city id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
