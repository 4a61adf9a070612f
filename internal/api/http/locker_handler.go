package http

import (
	"net/http"

	"sheerent-backend/internal/service"
)

type LockerHandler struct {
	lockerSvc service.LockerService
}

func NewLockerHandler(lockerSvc service.LockerService) *LockerHandler {
	return &LockerHandler{lockerSvc: lockerSvc}
}

func (h *LockerHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	available, err := h.lockerSvc.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, available)
}
