package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// AddCaptionRequest adds one manual caption. It is appended after the last
// existing caption with a default window.
type AddCaptionRequest struct {
	Text        string `json:"text" validate:"required"`
	SceneNumber int    `json:"scene_number" validate:"min=0"`
}

// AutoGenerateCaptions rebuilds the caption track from scene dialogue and
// the current clip order, replacing all existing captions.
func (h *ApplicationHandler) AutoGenerateCaptions(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	captions := session.AutoGenerateCaptions()
	h.Log.WithFields(map[string]interface{}{
		"project_id": session.ProjectID,
		"captions":   len(captions),
	}).Info("Captions auto-generated")
	return utils.RespondWithJSON(c, fiber.StatusOK, captions)
}

// AddCaption appends one manual caption.
func (h *ApplicationHandler) AddCaption(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(AddCaptionRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse caption JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	caption := session.AddManualCaption(req.Text, req.SceneNumber)
	return utils.RespondWithJSON(c, fiber.StatusCreated, caption)
}

// UpdateCaption applies a partial edit to one caption's text or window.
func (h *ApplicationHandler) UpdateCaption(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	captionID, err := uuid.Parse(c.Params("captionId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid caption ID format")
	}

	upd := new(composer.CaptionUpdate)
	if err := c.BodyParser(upd); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse caption JSON: %v", err))
	}

	updated, err := session.UpdateCaption(captionID, *upd)
	if err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// DeleteCaption removes one caption.
func (h *ApplicationHandler) DeleteCaption(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	captionID, err := uuid.Parse(c.Params("captionId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid caption ID format")
	}

	if err := session.RemoveCaption(captionID); err != nil {
		return h.respondEngineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": captionID})
}

// SetCaptionStyle replaces the single shared caption style. Enum fields
// must name known values.
func (h *ApplicationHandler) SetCaptionStyle(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	style := new(models.CaptionStyle)
	if err := c.BodyParser(style); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse style JSON: %v", err))
	}
	if !style.Position.Valid() {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown caption position %q", style.Position))
	}
	if !style.Alignment.Valid() {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown caption alignment %q", style.Alignment))
	}
	if !style.Animation.Valid() {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown caption animation %q", style.Animation))
	}

	session.SetCaptionStyle(*style)
	return utils.RespondWithJSON(c, fiber.StatusOK, session.CaptionStyle())
}
