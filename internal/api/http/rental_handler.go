package http

import (
	"net/http"
	"strconv"
	"time"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	ItemID     int32     `json:"item_id"`
	BorrowerID int32     `json:"borrower_id"`
	EndTime    time.Time `json:"end_time"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if req.ItemID <= 0 || req.BorrowerID <= 0 {
		writeError(w, apperr.Validation("item_id and borrower_id are required"))
		return
	}

	rental, err := h.rentalSvc.Create(r.Context(), req.ItemID, req.BorrowerID, req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var isReturned *bool
	if raw := r.URL.Query().Get("is_returned"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, apperr.Validation("invalid is_returned filter"))
			return
		}
		isReturned = &parsed
	}

	rentals, err := h.rentalSvc.List(r.Context(), isReturned)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalSvc.Get(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type returnRentalResponse struct {
	*domain.Rental
	DamageDetected bool           `json:"damage_detected"`
	DamageInfo     map[string]int `json:"damage_info"`
}

// Return accepts multipart form data: user_id, item_id, and the after
// image under "after_file".
func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperr.Validation("invalid multipart form"))
		return
	}
	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 32)
	if err != nil {
		writeError(w, apperr.Validation("invalid user_id"))
		return
	}
	itemID, err := strconv.ParseInt(r.FormValue("item_id"), 10, 32)
	if err != nil {
		writeError(w, apperr.Validation("invalid item_id"))
		return
	}

	file, _, err := r.FormFile("after_file")
	if err != nil {
		writeError(w, apperr.Validation("after_file is required"))
		return
	}
	defer file.Close()

	rental, report, err := h.rentalSvc.Return(r.Context(), rentalID, int32(userID), int32(itemID), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, returnRentalResponse{
		Rental:         rental,
		DamageDetected: report.Detected,
		DamageInfo:     report.Increases,
	})
}

func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalSvc.Extend(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Quote prices a window without creating a rental.
func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.URL.Query().Get("item_id"), 10, 32)
	if err != nil || itemID <= 0 {
		writeError(w, apperr.Validation("invalid item_id"))
		return
	}
	endTime, err := time.Parse(time.RFC3339, r.URL.Query().Get("end_time"))
	if err != nil {
		writeError(w, apperr.Validation("end_time must be RFC 3339"))
		return
	}

	breakdown, err := h.rentalSvc.Quote(r.Context(), int32(itemID), endTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *RentalHandler) StatsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.rentalSvc.StatsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
