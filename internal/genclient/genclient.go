// Package genclient wraps the out-of-scope AI generation pipeline behind
// a small HTTP client. The engine treats it as an external collaborator:
// a failed fetch is reported as a recoverable error and never mutates
// engine state.
package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ClipAsset is one generated video clip reference.
type ClipAsset struct {
	MediaURL string  `json:"media_url"`
	Duration float64 `json:"duration"`
}

// AudioAsset is one generated audio reference (voiceover or music).
type AudioAsset struct {
	MediaURL string  `json:"media_url"`
	Duration float64 `json:"duration"`
}

// Client talks to the generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a generation client for the given base URL.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		log:        log,
	}
}

// GenerateClip requests a new clip variant for a scene.
func (c *Client) GenerateClip(ctx context.Context, sceneNumber, variantNumber int, prompt string) (ClipAsset, error) {
	var asset ClipAsset
	req := map[string]interface{}{
		"scene_number":   sceneNumber,
		"variant_number": variantNumber,
		"prompt":         prompt,
	}
	if err := c.post(ctx, "/v1/clips", req, &asset); err != nil {
		return ClipAsset{}, fmt.Errorf("generating clip for scene %d: %w", sceneNumber, err)
	}
	return asset, nil
}

// GenerateVoiceover requests a voiceover rendering of a scene's dialogue.
func (c *Client) GenerateVoiceover(ctx context.Context, sceneNumber int, text string) (AudioAsset, error) {
	var asset AudioAsset
	req := map[string]interface{}{
		"scene_number": sceneNumber,
		"text":         text,
	}
	if err := c.post(ctx, "/v1/voiceovers", req, &asset); err != nil {
		return AudioAsset{}, fmt.Errorf("generating voiceover for scene %d: %w", sceneNumber, err)
	}
	return asset, nil
}

// GenerateMusic requests a background music track matching a mood prompt.
func (c *Client) GenerateMusic(ctx context.Context, prompt string) (AudioAsset, error) {
	var asset AudioAsset
	req := map[string]interface{}{"prompt": prompt}
	if err := c.post(ctx, "/v1/music", req, &asset); err != nil {
		return AudioAsset{}, fmt.Errorf("generating music: %w", err)
	}
	return asset, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Error("Generation service returned an error")
		return fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding generation response: %w", err)
	}
	return nil
}
