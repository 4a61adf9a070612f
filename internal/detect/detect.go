// Package detect wraps the external object-detection service. The service
// runs the model against an image file or directory on shared storage and
// reports per-class occurrence counts.
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/logger"
)

// Detector produces a defect inventory for an image file or directory.
type Detector interface {
	Detect(ctx context.Context, source string) (domain.DefectInventory, error)
}

// Client calls the detection service over HTTP.
type Client struct {
	baseURL    string
	classNames []string
	confidence float64
	httpClient *http.Client
}

func NewClient(baseURL string, classNames []string, confidence float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		classNames: classNames,
		confidence: confidence,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	RunID      string  `json:"run_id"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

type detection struct {
	ClassID int `json:"class_id"`
	Count   int `json:"count"`
}

type detectResponse struct {
	Detections []detection `json:"detections"`
}

// Detect returns the class→count inventory for source. A source that does
// not exist yet (an item with no stored images) yields an empty inventory,
// not an error. A reachable service reporting zero detections also yields
// an empty inventory. Transport failures and non-2xx responses surface as
// dependency errors so the caller never mistakes them for "no damage".
func (c *Client) Detect(ctx context.Context, source string) (domain.DefectInventory, error) {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return domain.DefectInventory{}, nil
	} else if err != nil {
		return nil, apperr.Dependency("detection source unreadable", errors.Wrap(err, "checking detect source"))
	}

	runID := uuid.New().String()
	body, err := json.Marshal(detectRequest{
		RunID:      runID,
		Source:     source,
		Confidence: c.confidence,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding detect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building detect request")
	}
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("detection", "detect", "run_id", runID, "source", source)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("detection", "detect", err, "run_id", runID)
		return nil, apperr.Dependency("detection service unavailable", errors.Wrap(err, "posting detect request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf("detection service returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("detection", "detect", err, "run_id", runID)
		return nil, apperr.Dependency("detection service unavailable", err)
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.Dependency("detection service unavailable", errors.Wrap(err, "decoding detect response"))
	}
	logger.ExternalServiceResult("detection", "detect", nil, "run_id", runID, "detections", len(decoded.Detections))

	inventory := domain.DefectInventory{}
	for _, d := range decoded.Detections {
		inventory[c.className(d.ClassID)] += d.Count
	}
	return inventory, nil
}

// className maps a model class id to its configured name. Ids outside the
// configured set are kept under a synthesized label instead of dropped.
func (c *Client) className(id int) string {
	if id >= 0 && id < len(c.classNames) {
		return c.classNames[id]
	}
	return fmt.Sprintf("class_%d", id)
}
