package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

type Handler struct {
	Stats service.StatsReader
	Now   func() time.Time
}

func NewHandler(stats service.StatsReader) *Handler {
	return &Handler{Stats: stats, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "stats-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/stats/dishes/top", h.getTopDishes).Methods("GET")
	r.HandleFunc("/api/stats/ratings/today", h.getRatingsToday).Methods("GET")
	r.HandleFunc("/api/stats/orders", h.getOrderCounts).Methods("GET")
}

func (h *Handler) getTopDishes(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTopLimit {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"detail": "limit must be an integer between 1 and " + strconv.Itoa(maxTopLimit),
			})
			return
		}
		limit = n
	}

	data, err := h.Stats.TopRated(r.Context(), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getRatingsToday(w http.ResponseWriter, r *http.Request) {
	data, err := h.Stats.RatingsOn(r.Context(), h.Now())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getOrderCounts(w http.ResponseWriter, r *http.Request) {
	data, err := h.Stats.OrderCounts(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeFailure(w http.ResponseWriter, err error) {
	log.Printf("Error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
}
