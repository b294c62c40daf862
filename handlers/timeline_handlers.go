package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/internal/jobs"
	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// AddClipRequest appends a clip to the end of the timeline. MediaURL may
// be empty, in which case the clip renders as a placeholder until a
// generation job attaches media.
type AddClipRequest struct {
	SceneNumber   int     `json:"scene_number" validate:"min=0"`
	VariantNumber int     `json:"variant_number" validate:"min=0"`
	MediaURL      string  `json:"media_url,omitempty"`
	Duration      float64 `json:"duration" validate:"required,gt=0"`
}

// ReorderClipsRequest carries the full permutation of clip ids in the
// desired order.
type ReorderClipsRequest struct {
	ClipIDs []uuid.UUID `json:"clip_ids" validate:"required,min=1"`
}

// ReplaceClipRequest swaps a clip for another variant. When MediaURL is
// empty the variant is looked up among the scene's stored candidates.
type ReplaceClipRequest struct {
	VariantNumber int     `json:"variant_number" validate:"min=0"`
	MediaURL      string  `json:"media_url,omitempty"`
	Duration      float64 `json:"duration,omitempty"`
}

// GenerateClipRequest queues a generation job for a new variant of the
// clip's scene.
type GenerateClipRequest struct {
	Prompt        string `json:"prompt" validate:"required"`
	VariantNumber int    `json:"variant_number" validate:"min=0"`
}

// SetTransitionRequest upserts the transition after a clip. Kind "none"
// removes it.
type SetTransitionRequest struct {
	AfterClipID uuid.UUID             `json:"after_clip_id" validate:"required"`
	Kind        models.TransitionKind `json:"kind" validate:"required"`
	Duration    float64               `json:"duration"`
}

// AddClip appends a clip to the project's timeline.
func (h *ApplicationHandler) AddClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(AddClipRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse clip JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	clip := models.Clip{
		ID:            uuid.New(),
		SceneNumber:   req.SceneNumber,
		VariantNumber: req.VariantNumber,
		MediaURL:      req.MediaURL,
		Duration:      req.Duration,
	}
	if err := session.AppendClip(clip); err != nil {
		return h.respondEngineError(c, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"clip_id":    clip.ID,
		"scene":      clip.SceneNumber,
	}).Info("Clip added")
	return utils.RespondWithJSON(c, fiber.StatusCreated, clip)
}

// DeleteClip removes a clip; any transition anchored to it goes with it.
func (h *ApplicationHandler) DeleteClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(c.Params("clipId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip ID format")
	}

	if err := session.RemoveClip(clipID); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"clips": session.Clips()})
}

// UpdateClip applies trim and crop edits to one clip.
func (h *ApplicationHandler) UpdateClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(c.Params("clipId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip ID format")
	}

	upd := new(composer.ClipUpdate)
	if err := c.BodyParser(upd); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse clip JSON: %v", err))
	}

	updated, err := session.UpdateClip(clipID, *upd)
	if err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// ReorderClips rearranges the timeline to the given permutation.
func (h *ApplicationHandler) ReorderClips(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(ReorderClipsRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse reorder JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	if err := session.ReorderClips(req.ClipIDs); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"clips": session.Clips()})
}

// ReplaceClip swaps a clip for another variant, keeping its timeline slot
// and carrying over any anchored transition.
func (h *ApplicationHandler) ReplaceClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(c.Params("clipId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip ID format")
	}

	req := new(ReplaceClipRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse replace JSON: %v", err))
	}

	current, found := findClip(session.Clips(), clipID)
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Clip %s not found", clipID))
	}

	replacement := models.Clip{
		ID:            uuid.New(),
		SceneNumber:   current.SceneNumber,
		VariantNumber: req.VariantNumber,
		MediaURL:      req.MediaURL,
		Duration:      req.Duration,
	}
	if replacement.MediaURL == "" {
		cand, ok := findCandidate(session.Candidates()[current.SceneNumber], req.VariantNumber)
		if !ok {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("No candidate variant %d for scene %d", req.VariantNumber, current.SceneNumber))
		}
		replacement.MediaURL = cand.MediaURL
		replacement.Duration = cand.Duration
	}

	if err := session.ReplaceClip(clipID, replacement); err != nil {
		return h.respondEngineError(c, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"old_clip":   clipID,
		"new_clip":   replacement.ID,
	}).Info("Clip replaced")
	return utils.RespondWithJSON(c, fiber.StatusOK, replacement)
}

// SelectClip marks a clip as the edit target.
func (h *ApplicationHandler) SelectClip(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(c.Params("clipId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip ID format")
	}

	if err := session.SelectClip(clipID); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"selected": clipID})
}

// GenerateClipVariant queues an asynchronous generation job whose result
// attaches media to the target clip. The request returns immediately.
func (h *ApplicationHandler) GenerateClipVariant(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(c.Params("clipId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip ID format")
	}

	req := new(GenerateClipRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse generate JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	current, found := findClip(session.Clips(), clipID)
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Clip %s not found", clipID))
	}

	job := &jobs.GenerateClipJob{
		JobKey:        fmt.Sprintf("generate-clip-%s", clipID),
		Session:       session,
		Client:        h.Gen,
		ClipID:        clipID,
		SceneNumber:   current.SceneNumber,
		VariantNumber: req.VariantNumber,
		Prompt:        req.Prompt,
		Log:           h.Log,
	}
	if !h.Dispatcher.Submit(job) {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Generation queue is full, try again later")
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"clip_id":    clipID,
	}).Info("Clip generation queued")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{"clip_id": clipID, "queued": true})
}

// SetTransition upserts the transition anchored to a clip. Duration is
// clamped into the allowed range; kind "none" removes the transition.
func (h *ApplicationHandler) SetTransition(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(SetTransitionRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse transition JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	tr, err := session.SetTransition(req.AfterClipID, req.Kind, req.Duration)
	if err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, tr)
}

// DeleteTransition removes a transition by its own id.
func (h *ApplicationHandler) DeleteTransition(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	transitionID, err := uuid.Parse(c.Params("transitionId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid transition ID format")
	}

	if err := session.RemoveTransition(transitionID); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": transitionID})
}

func findClip(clips []models.Clip, id uuid.UUID) (models.Clip, bool) {
	for _, clip := range clips {
		if clip.ID == id {
			return clip, true
		}
	}
	return models.Clip{}, false
}

func findCandidate(candidates []models.CandidateClip, variant int) (models.CandidateClip, bool) {
	for _, cand := range candidates {
		if cand.VariantNumber == variant {
			return cand, true
		}
	}
	return models.CandidateClip{}, false
}
