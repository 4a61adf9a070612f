package http

import (
	"encoding/json"
	"net/http"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("encoding response failed", "error", err)
		}
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Errors with
// no kind are internal and not echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInsufficient:
		status = http.StatusPaymentRequired
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDependency:
		status = http.StatusBadGateway
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Kind: "internal", Message: "internal server error"},
		})
		return
	}

	writeJSON(w, status, errorBody{
		Error: errorDetail{Kind: string(kind), Message: err.Error()},
	})
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
