package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/config"
	"videoforge/composer-api/utils"
)

const mediaBucket = "project-media"

// UploadMedia proxies a multipart file upload into Supabase storage so the
// browser never needs storage credentials. The stored object path is
// returned; attaching it to a clip or audio track is a separate call.
func (h *ApplicationHandler) UploadMedia(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	mediaID, err := uuid.Parse(c.Params("mediaId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid media ID format")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Error getting file: %v", err))
	}

	handle, err := file.Open()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error opening file: %v", err))
	}
	defer handle.Close()

	content, err := io.ReadAll(handle)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error reading file: %v", err))
	}

	storagePath := fmt.Sprintf("%s/%s/%s", projectID, mediaID, file.Filename)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", config.GetSupabaseURL(), mediaBucket, storagePath)

	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost, uploadURL, bytes.NewReader(content))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error creating upload request: %v", err))
	}
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+config.GetSupabaseKey())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Storage upload failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("Error uploading file: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		h.Log.WithFields(map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("Storage upload rejected")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("Upload failed with status %d", resp.StatusCode))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", config.GetSupabaseURL(), mediaBucket, storagePath)
	h.Log.WithFields(map[string]interface{}{
		"project_id": projectID,
		"media_id":   mediaID,
		"path":       storagePath,
	}).Info("Media uploaded")
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"storage_path": storagePath,
		"media_url":    publicURL,
		"size":         len(content),
	})
}
