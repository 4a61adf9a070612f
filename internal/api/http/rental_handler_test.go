package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sheerent-backend/internal/apperr"
	api "sheerent-backend/internal/api/http"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/pricing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*mux.Router, *MockUserService, *MockItemService, *MockRentalService, *MockLockerService, *MockLockerDevice) {
	userSvc := new(MockUserService)
	itemSvc := new(MockItemService)
	rentalSvc := new(MockRentalService)
	lockerSvc := new(MockLockerService)
	dev := new(MockLockerDevice)
	return api.NewRouter(userSvc, itemSvc, rentalSvc, lockerSvc, dev), userSvc, itemSvc, rentalSvc, lockerSvc, dev
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRentalHandler_Create(t *testing.T) {
	endTime := time.Now().Add(12 * time.Hour).UTC().Truncate(time.Second)

	t.Run("Success", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rental := &domain.Rental{ID: 1, ItemID: 2, BorrowerID: 3, EndTime: endTime, TotalCharge: 1320}
		rentalSvc.On("Create", mock.Anything, int32(2), int32(3), endTime).Return(rental, nil)

		rec := doJSON(t, router, http.MethodPost, "/rentals", map[string]any{
			"item_id":     2,
			"borrower_id": 3,
			"end_time":    endTime.Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Rental
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int32(1), got.ID)
		assert.Equal(t, int32(1320), got.TotalCharge)
	})

	t.Run("MissingFields", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rec := doJSON(t, router, http.MethodPost, "/rentals", map[string]any{"item_id": 2})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rentalSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InsufficientPointsIs402", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("Create", mock.Anything, int32(2), int32(3), endTime).
			Return(nil, apperr.Insufficient("not enough points for this rental"))

		rec := doJSON(t, router, http.MethodPost, "/rentals", map[string]any{
			"item_id":     2,
			"borrower_id": 3,
			"end_time":    endTime.Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		var body struct {
			Error struct {
				Kind    string `json:"kind"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "insufficient_points", body.Error.Kind)
	})

	t.Run("ActiveRentalIs409", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("Create", mock.Anything, int32(2), int32(3), endTime).
			Return(nil, apperr.Conflict("item already has an active rental"))

		rec := doJSON(t, router, http.MethodPost, "/rentals", map[string]any{
			"item_id":     2,
			"borrower_id": 3,
			"end_time":    endTime.Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InternalErrorNotEchoed", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("Create", mock.Anything, int32(2), int32(3), endTime).
			Return(nil, assert.AnError)

		rec := doJSON(t, router, http.MethodPost, "/rentals", map[string]any{
			"item_id":     2,
			"borrower_id": 3,
			"end_time":    endTime.Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestRentalHandler_Return(t *testing.T) {
	returnForm := func(t *testing.T, userID, itemID string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("user_id", userID))
		require.NoError(t, w.WriteField("item_id", itemID))
		fw, err := w.CreateFormFile("after_file", "after.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return &buf, w.FormDataContentType()
	}

	t.Run("Success", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		settled := &domain.Rental{ID: 1, ItemID: 2, BorrowerID: 3, IsReturned: true,
			DamageReported: true, DeductedAmount: 60}
		report := &domain.DamageReport{Detected: true, Increases: map[string]int{"scratch": 2}}
		rentalSvc.On("Return", mock.Anything, int32(1), int32(3), int32(2), mock.Anything).
			Return(settled, report, nil)

		body, contentType := returnForm(t, "3", "2")
		req := httptest.NewRequest(http.MethodPut, "/rentals/1/return", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			ID             int32          `json:"id"`
			IsReturned     bool           `json:"is_returned"`
			DamageDetected bool           `json:"damage_detected"`
			DamageInfo     map[string]int `json:"damage_info"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.IsReturned)
		assert.True(t, got.DamageDetected)
		assert.Equal(t, map[string]int{"scratch": 2}, got.DamageInfo)
	})

	t.Run("MissingAfterFile", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("user_id", "3"))
		require.NoError(t, w.WriteField("item_id", "2"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPut, "/rentals/1/return", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rentalSvc.AssertNotCalled(t, "Return",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyReturnedIs409", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("Return", mock.Anything, int32(1), int32(3), int32(2), mock.Anything).
			Return(nil, nil, apperr.Conflict("rental is already returned"))

		body, contentType := returnForm(t, "3", "2")
		req := httptest.NewRequest(http.MethodPut, "/rentals/1/return", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRentalHandler_List(t *testing.T) {
	t.Run("FilterParsed", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("List", mock.Anything, mock.MatchedBy(func(f *bool) bool {
			return f != nil && *f == false
		})).Return([]domain.Rental{}, nil)

		rec := doJSON(t, router, http.MethodGet, "/rentals?is_returned=false", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rentalSvc.AssertExpectations(t)
	})

	t.Run("BadFilter", func(t *testing.T) {
		router, _, _, _, _, _ := newTestRouter()

		rec := doJSON(t, router, http.MethodGet, "/rentals?is_returned=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRentalHandler_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		rentalSvc.On("Get", mock.Anything, int32(99)).
			Return(nil, apperr.NotFound("rental not found"))

		rec := doJSON(t, router, http.MethodGet, "/rentals/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("NonNumericIDNotRouted", func(t *testing.T) {
		router, _, _, _, _, _ := newTestRouter()

		rec := doJSON(t, router, http.MethodGet, "/rentals/abc", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRentalHandler_Quote(t *testing.T) {
	t.Run("BadEndTime", func(t *testing.T) {
		router, _, _, _, _, _ := newTestRouter()

		rec := doJSON(t, router, http.MethodGet, "/rentals/quote?item_id=2&end_time=tomorrow", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		router, _, _, rentalSvc, _, _ := newTestRouter()

		endTime := time.Now().Add(12 * time.Hour).UTC().Truncate(time.Second)
		rentalSvc.On("Quote", mock.Anything, int32(2), endTime).
			Return(&pricing.Breakdown{Hours: 12, UsageFee: 1200, InsuranceFee: 60, ServiceFee: 60, Total: 1320}, nil)

		path := fmt.Sprintf("/rentals/quote?item_id=2&end_time=%s", endTime.Format(time.RFC3339))
		rec := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
