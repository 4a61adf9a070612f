package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.userSvc.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type chargeRequest struct {
	Amount int32 `json:"amount"`
}

func (h *UserHandler) ChargePoints(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	balance, err := h.userSvc.ChargePoints(r.Context(), userID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"id": userID, "new_point": balance})
}

func (h *UserHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.userSvc.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *UserHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rentals, err := h.userSvc.ListRentals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return int32(id), nil
}
