// Package device talks to the locker hardware peer (a Raspberry Pi that
// drives the locker door and camera) over HTTP.
package device

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/logger"
)

// LockerDevice is the hardware contract: open and close the door, and
// capture a JPEG from the locker camera.
type LockerDevice interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Capture(ctx context.Context) ([]byte, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Open(ctx context.Context) error {
	return c.command(ctx, "open")
}

func (c *Client) Close(ctx context.Context) error {
	return c.command(ctx, "close")
}

func (c *Client) command(ctx context.Context, op string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, nil)
	if err != nil {
		return errors.Wrapf(err, "building %s request", op)
	}

	logger.ExternalServiceCall("locker-device", op)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("locker-device", op, err)
		return apperr.Dependency("locker device unreachable", errors.Wrapf(err, "sending %s command", op))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf("device returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("locker-device", op, err)
		return apperr.Dependency(fmt.Sprintf("locker device rejected %s command", op), err)
	}
	logger.ExternalServiceResult("locker-device", op, nil)
	return nil
}

// Capture requests a snapshot from the locker camera and returns the raw
// JPEG bytes.
func (c *Client) Capture(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shoot", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building capture request")
	}

	logger.ExternalServiceCall("locker-device", "capture")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("locker-device", "capture", err)
		return nil, apperr.Dependency("locker device unreachable", errors.Wrap(err, "requesting capture"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf("device returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("locker-device", "capture", err)
		return nil, apperr.Dependency("locker device capture failed", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Dependency("locker device capture failed", errors.Wrap(err, "reading capture body"))
	}
	logger.ExternalServiceResult("locker-device", "capture", nil, "bytes", len(data))
	return data, nil
}
