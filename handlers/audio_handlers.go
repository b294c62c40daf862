package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/internal/jobs"
	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// AddAudioClipRequest places an audio clip on one of the three tracks.
// Volume defaults to 100 when omitted.
type AddAudioClipRequest struct {
	Type      models.AudioTrackKind `json:"type" validate:"required,oneof=voiceover music sfx"`
	MediaURL  string                `json:"media_url" validate:"required"`
	Duration  float64               `json:"duration" validate:"required,gt=0"`
	StartTime float64               `json:"start_time" validate:"min=0"`
	Volume    *float64              `json:"volume,omitempty"`
	FadeIn    float64               `json:"fade_in" validate:"min=0"`
	FadeOut   float64               `json:"fade_out" validate:"min=0"`
	Label     string                `json:"label,omitempty"`
}

// GenerateMusicRequest produces a background music track synchronously and
// places it at the start of the timeline.
type GenerateMusicRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// AddAudioClip adds a clip to the track named by its type.
func (h *ApplicationHandler) AddAudioClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(AddAudioClipRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse audio JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	volume := 100.0
	if req.Volume != nil {
		volume = *req.Volume
	}
	clip := models.AudioClip{
		Type:      req.Type,
		MediaURL:  req.MediaURL,
		Duration:  req.Duration,
		StartTime: req.StartTime,
		Volume:    volume,
		FadeIn:    req.FadeIn,
		FadeOut:   req.FadeOut,
		Label:     req.Label,
	}
	added, err := session.AddAudioClip(clip)
	if err != nil {
		return h.respondEngineError(c, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"audio_id":   added.ID,
		"track":      added.Type,
	}).Info("Audio clip added")
	return utils.RespondWithJSON(c, fiber.StatusCreated, added)
}

// UpdateAudioClip applies a partial edit to an audio clip by id.
func (h *ApplicationHandler) UpdateAudioClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	audioID, err := uuid.Parse(c.Params("audioId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid audio clip ID format")
	}

	upd := new(composer.AudioClipUpdate)
	if err := c.BodyParser(upd); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse audio JSON: %v", err))
	}

	updated, err := session.UpdateAudioClip(audioID, *upd)
	if err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// DeleteAudioClip removes an audio clip from whichever track holds it.
func (h *ApplicationHandler) DeleteAudioClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	audioID, err := uuid.Parse(c.Params("audioId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid audio clip ID format")
	}

	if err := session.RemoveAudioClip(audioID); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": audioID})
}

// GenerateVoiceover queues a voiceover generation job for a scene's
// dialogue. The finished clip replaces any previous voiceover for that
// scene and lands at the scene's current timeline offset.
func (h *ApplicationHandler) GenerateVoiceover(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	sceneNumber, err := strconv.Atoi(c.Params("sceneNumber"))
	if err != nil || sceneNumber < 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid scene number")
	}

	scene, ok := session.Scenes()[sceneNumber]
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Scene %d not found", sceneNumber))
	}
	if scene.Dialogue == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Scene %d has no dialogue", sceneNumber))
	}

	job := &jobs.GenerateVoiceoverJob{
		JobKey:      fmt.Sprintf("generate-voiceover-%s-%d", session.ProjectID, sceneNumber),
		Session:     session,
		Client:      h.Gen,
		SceneNumber: sceneNumber,
		Dialogue:    scene.Dialogue,
		Log:         h.Log,
	}
	if !h.Dispatcher.Submit(job) {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Generation queue is full, try again later")
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"scene":      sceneNumber,
	}).Info("Voiceover generation queued")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{"scene_number": sceneNumber, "queued": true})
}

// GenerateMusic calls the generation service synchronously and places the
// resulting track on the music track from t=0.
func (h *ApplicationHandler) GenerateMusic(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(GenerateMusicRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse music JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	asset, err := h.Gen.GenerateMusic(c.Context(), req.Prompt)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Music generation failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("Music generation failed: %v", err))
	}

	clip := models.AudioClip{
		Type:     models.AudioTrackMusic,
		MediaURL: asset.MediaURL,
		Duration: asset.Duration,
		Volume:   100,
		Label:    "Background music",
	}
	added, err := session.AddAudioClip(clip)
	if err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, added)
}
