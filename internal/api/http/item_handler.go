package http

import (
	"io"
	"net/http"
	"strconv"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/service"
)

// maxUploadBytes bounds a whole multipart registration request.
const maxUploadBytes = 50 << 20

// maxImagesPerItem bounds how many registration photos one item may carry.
const maxImagesPerItem = 10

type ItemHandler struct {
	itemSvc   service.ItemService
	lockerSvc service.LockerService
}

func NewItemHandler(itemSvc service.ItemService, lockerSvc service.LockerService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc, lockerSvc: lockerSvc}
}

// Register accepts multipart form data: name, description, price, owner_id,
// price_unit, optional locker_id, and up to ten image files under "files".
func (h *ItemHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperr.Validation("invalid multipart form"))
		return
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 32)
	if err != nil {
		writeError(w, apperr.Validation("invalid price"))
		return
	}
	ownerID, err := strconv.ParseInt(r.FormValue("owner_id"), 10, 32)
	if err != nil {
		writeError(w, apperr.Validation("invalid owner_id"))
		return
	}

	item := &domain.Item{
		OwnerID:     int32(ownerID),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       int32(price),
		PriceUnit:   domain.PriceUnit(r.FormValue("price_unit")),
	}
	if locker := r.FormValue("locker_id"); locker != "" {
		item.LockerID = &locker
	}

	var images []io.Reader
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if r.MultipartForm != nil {
		files := r.MultipartForm.File["files"]
		if len(files) > maxImagesPerItem {
			files = files[:maxImagesPerItem]
		}
		for _, header := range files {
			f, err := header.Open()
			if err != nil {
				writeError(w, apperr.Validation("unreadable image upload"))
				return
			}
			closers = append(closers, f)
			images = append(images, f)
		}
	}

	created, err := h.itemSvc.Register(r.Context(), item, images)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.itemSvc.Get(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int32  `json:"price"`
	PriceUnit   *string `json:"price_unit"`
	Status      *string `json:"status"`
	LockerID    *string `json:"locker_id"`
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	item, err := h.itemSvc.Get(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.PriceUnit != nil {
		item.PriceUnit = domain.PriceUnit(*req.PriceUnit)
	}
	if req.Status != nil {
		item.Status = domain.ItemStatus(*req.Status)
	}

	updated, err := h.itemSvc.Update(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}

	// Locker changes go through the allocator so uniqueness is enforced.
	if req.LockerID != nil {
		if *req.LockerID == "" {
			err = h.lockerSvc.Release(r.Context(), itemID)
		} else {
			err = h.lockerSvc.Assign(r.Context(), itemID, *req.LockerID)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if updated, err = h.itemSvc.Get(r.Context(), itemID); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.itemSvc.Delete(r.Context(), itemID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemSvc.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.itemSvc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.itemSvc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
