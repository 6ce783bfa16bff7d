package handlers

import (
	"net/http"

	"fleet-scheduler/internal/logx"
)

// FleetHandler serves the vehicle and trailer catalog.
type FleetHandler struct {
	logger  logx.Logger
	usecase fleetUsecase
}

// NewFleetHandler creates a new fleet handler.
func NewFleetHandler(usecase fleetUsecase, logger logx.Logger) *FleetHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FleetHandler{usecase: usecase, logger: logger}
}

// ListVehicles handles GET /vehicles.
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.usecase.Vehicles(r.Context()))
}

// UpsertVehicle handles PUT /vehicles/{id}.
func (h *FleetHandler) UpsertVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req vehicleRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	v := req.toDomain(id)
	if err := h.usecase.UpsertVehicle(r.Context(), v); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, v)
}

// ListTrailers handles GET /trailers.
func (h *FleetHandler) ListTrailers(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.usecase.Trailers(r.Context()))
}

// UpsertTrailer handles PUT /trailers/{id}.
func (h *FleetHandler) UpsertTrailer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req trailerRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	t := req.toDomain(id)
	if err := h.usecase.UpsertTrailer(r.Context(), t); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, t)
}
