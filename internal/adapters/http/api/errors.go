package api

import (
	"errors"
	"net/http"

	"github.com/cardroom/standings/internal/adapters/store"
	service "github.com/cardroom/standings/internal/app"
)

// writeServiceError translates engine errors into HTTP responses: validation
// failures map to 400, missing entities to 404, and partial writes to 500
// with the id of the tournament that was created before the failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "validation", verr)
		return
	}

	var perr *service.PartialWriteError
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:         "partial_write",
			Message:      perr.Error(),
			TournamentID: perr.TournamentID,
		})
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}

	writeError(w, http.StatusInternalServerError, "internal", err)
}
