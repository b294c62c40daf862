// Package renderclient submits composition payloads to the external
// render service and polls job progress. The engine never encodes media
// itself; render status is an opaque status/percentage/message triple.
package renderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"videoforge/composer-api/models"
)

// RenderStatus is the service's report on one render job.
type RenderStatus struct {
	RenderID  string  `json:"render_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Message   string  `json:"message,omitempty"`
	OutputURL string  `json:"output_url,omitempty"`
}

// Client talks to the render service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a render client for the given base URL.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// Submit hands the full composition description to the render service and
// returns the service's initial job status.
func (c *Client) Submit(ctx context.Context, payload models.RenderPayload) (RenderStatus, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return RenderStatus{}, fmt.Errorf("encoding render payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/renders", bytes.NewReader(body))
	if err != nil {
		return RenderStatus{}, fmt.Errorf("building render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RenderStatus{}, fmt.Errorf("calling render service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated {
		c.log.WithField("status", resp.StatusCode).Error("Render service rejected submission")
		return RenderStatus{}, fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	var status RenderStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return RenderStatus{}, fmt.Errorf("decoding render response: %w", err)
	}
	return status, nil
}

// Status polls the render service for one job's progress.
func (c *Client) Status(ctx context.Context, renderID string) (RenderStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/renders/%s", c.baseURL, renderID), nil)
	if err != nil {
		return RenderStatus{}, fmt.Errorf("building status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RenderStatus{}, fmt.Errorf("calling render service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RenderStatus{}, fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	var status RenderStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return RenderStatus{}, fmt.Errorf("decoding status response: %w", err)
	}
	return status, nil
}
