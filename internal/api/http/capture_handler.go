package http

import (
	"net/http"

	"sheerent-backend/internal/device"
)

// CaptureHandler proxies the locker hardware peer.
type CaptureHandler struct {
	dev device.LockerDevice
}

func NewCaptureHandler(dev device.LockerDevice) *CaptureHandler {
	return &CaptureHandler{dev: dev}
}

func (h *CaptureHandler) Capture(w http.ResponseWriter, r *http.Request) {
	data, err := h.dev.Capture(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *CaptureHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.dev.Open(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

func (h *CaptureHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.dev.Close(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
