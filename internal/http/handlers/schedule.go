package handlers

import (
	"net/http"

	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/scheduler"
)

// ScheduleHandler serves shipments, unassigned orders and the lifecycle
// operations on them.
type ScheduleHandler struct {
	logger  logx.Logger
	usecase scheduleUsecase
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(usecase scheduleUsecase, logger logx.Logger) *ScheduleHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ScheduleHandler{usecase: usecase, logger: logger}
}

// ListShipments handles GET /shipments.
func (h *ScheduleHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.usecase.Shipments(r.Context()))
}

// ListUnassigned handles GET /orders/unassigned.
func (h *ScheduleHandler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.usecase.UnassignedOrders(r.Context()))
}

// Stats handles GET /schedule/stats.
func (h *ScheduleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.usecase.Stats(r.Context()))
}

// AddOrder handles POST /orders/unassigned.
func (h *ScheduleHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	o, err := h.usecase.AddOrder(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, o)
}

// Assign handles POST /shipments/{id}/assign.
func (h *ScheduleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.placement(w, r)
	if !ok {
		return
	}
	res, err := h.usecase.Assign(r.Context(), id, req.VehicleID, req.interval())
	h.writeResult(w, r, res, err, http.StatusOK)
}

// Move handles POST /shipments/{id}/move.
func (h *ScheduleHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.placement(w, r)
	if !ok {
		return
	}
	res, err := h.usecase.Move(r.Context(), id, req.VehicleID, req.interval())
	h.writeResult(w, r, res, err, http.StatusOK)
}

// Resize handles POST /shipments/{id}/resize.
func (h *ScheduleHandler) Resize(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req resizeRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	res, err := h.usecase.Resize(r.Context(), id, req.interval())
	h.writeResult(w, r, res, err, http.StatusOK)
}

// Schedule handles POST /orders/unassigned/{id}/schedule.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.placement(w, r)
	if !ok {
		return
	}
	res, err := h.usecase.CreateFromUnassigned(r.Context(), id, req.VehicleID, req.interval())
	h.writeResult(w, r, res, err, http.StatusCreated)
}

// Remove handles DELETE /shipments/{id} and returns the regenerated order.
func (h *ScheduleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.usecase.Remove(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, o)
}

// AutoAllocate handles POST /shipments/{id}/auto-allocate. An empty body
// allocates against the shipment's own vehicle.
func (h *ScheduleHandler) AutoAllocate(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req autoAllocateRequest
	if r.ContentLength != 0 && !decodeJSON(h.logger, w, r, &req) {
		return
	}

	out, err := h.usecase.AutoAllocate(r.Context(), id, req.VehicleID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toAllocationResponse(out))
}

func (h *ScheduleHandler) placement(w http.ResponseWriter, r *http.Request) (string, placementRequest, bool) {
	var req placementRequest
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return "", req, false
	}
	if !decodeJSON(h.logger, w, r, &req) {
		return "", req, false
	}
	return id, req, true
}

// writeResult renders a lifecycle outcome. Rejections are 409 with the
// structured result; a committed shipment with unresolved issues is 201.
func (h *ScheduleHandler) writeResult(w http.ResponseWriter, r *http.Request, res scheduler.Result, err error, okStatus int) {
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	switch {
	case res.Success:
		writeJSON(h.logger, w, r, okStatus, toResultResponse(res))
	case res.Partial:
		writeJSON(h.logger, w, r, http.StatusCreated, toResultResponse(res))
	default:
		writeJSON(h.logger, w, r, http.StatusConflict, toResultResponse(res))
	}
}
