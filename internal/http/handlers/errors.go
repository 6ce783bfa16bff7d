package handlers

import (
	"errors"
	"net/http"

	"fleet-scheduler/internal/apperr"
	"fleet-scheduler/internal/logx"
)

// writeServiceError maps usecase errors to HTTP statuses.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	default:
		if logger != nil {
			logger.Error("usecase failed",
				logx.String("req_id", reqID(r.Context())),
				logx.Err(err),
			)
		}
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
