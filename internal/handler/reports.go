package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/service"
)

// ReportServicer defines the service methods needed by report handlers.
type ReportServicer interface {
	Summary(timeframe string) (service.SalesSummary, error)
	Hourly(timeframe string) ([]service.HourlySales, error)
	Daily(timeframe string) ([]service.DailySales, error)
	PopularItems(timeframe string, limit int) ([]service.PopularItem, error)
	CategorySales(timeframe string) ([]service.CategorySales, error)
}

// ReportHandler handles the analytics endpoints.
type ReportHandler struct {
	svc ReportServicer
	log *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc ReportServicer, log *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: log}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/hourly-sales", h.Hourly)
	r.Get("/daily-sales", h.Daily)
	r.Get("/popular-items", h.PopularItems)
	r.Get("/category-sales", h.CategorySales)
}

// Summary handles GET /reports/summary?timeframe=.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.URL.Query().Get("timeframe"))
	if err != nil {
		h.respondError(w, "sales summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Hourly handles GET /reports/hourly-sales?timeframe=.
func (h *ReportHandler) Hourly(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Hourly(r.URL.Query().Get("timeframe"))
	if err != nil {
		h.respondError(w, "hourly sales", err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// Daily handles GET /reports/daily-sales?timeframe=.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Daily(r.URL.Query().Get("timeframe"))
	if err != nil {
		h.respondError(w, "daily sales", err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// PopularItems handles GET /reports/popular-items?timeframe=&limit=.
func (h *ReportHandler) PopularItems(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	items, err := h.svc.PopularItems(r.URL.Query().Get("timeframe"), limit)
	if err != nil {
		h.respondError(w, "popular items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CategorySales handles GET /reports/category-sales?timeframe=.
func (h *ReportHandler) CategorySales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.CategorySales(r.URL.Query().Get("timeframe"))
	if err != nil {
		h.respondError(w, "category sales", err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *ReportHandler) respondError(w http.ResponseWriter, op string, err error) {
	if isValidationError(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.log.Error(op, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
