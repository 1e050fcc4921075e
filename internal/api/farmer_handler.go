package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avaolo/agri-gateway/internal/api/shared"
	"github.com/avaolo/agri-gateway/internal/domain"
	"github.com/avaolo/agri-gateway/internal/store"
)

// maxListLimit caps the limit query parameter so an arbitrary value
// never reaches the database.
const maxListLimit = 100

// FarmersResponse is the payload of GET /api/v1/farmers.
type FarmersResponse struct {
	Success bool            `json:"success"`
	Farmers []domain.Farmer `json:"farmers"`
}

// FarmerResponse is the payload of GET /api/v1/farmers/{id}.
type FarmerResponse struct {
	Success bool          `json:"success"`
	Farmer  domain.Farmer `json:"farmer"`
}

// FarmerHandler serves the farmer directory for UI selection.
type FarmerHandler struct {
	farmers store.FarmerStore
	logger  *slog.Logger
}

// NewFarmerHandler creates a FarmerHandler over the given store.
func NewFarmerHandler(farmers store.FarmerStore, logger *slog.Logger) *FarmerHandler {
	return &FarmerHandler{farmers: farmers, logger: logger}
}

// ListFarmers handles GET /api/v1/farmers requests.
func (h *FarmerHandler) ListFarmers(w http.ResponseWriter, r *http.Request) {
	limit := maxListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if parsed > maxListLimit {
			parsed = maxListLimit
		}
		limit = parsed
	}

	farmers, err := h.farmers.ListFarmers(r.Context(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list farmers", err)
		return
	}
	if farmers == nil {
		farmers = []domain.Farmer{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FarmersResponse{Success: true, Farmers: farmers})
}

// GetFarmer handles GET /api/v1/farmers/{id} requests.
func (h *FarmerHandler) GetFarmer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid farmer ID")
		return
	}

	farmer, err := h.farmers.GetFarmer(r.Context(), id)
	if errors.Is(err, store.ErrFarmerNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Farmer not found")
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get farmer", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FarmerResponse{Success: true, Farmer: farmer})
}
