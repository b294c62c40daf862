package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"videoforge/composer-api/utils"
)

// SeekRequest moves the playhead. Positions outside [0, total] are clamped.
type SeekRequest struct {
	Position float64 `json:"position"`
}

// Play starts or resumes playback from the current playhead.
func (h *ApplicationHandler) Play(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	session.Play()
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Playback())
}

// Pause halts playback, keeping the playhead where it is.
func (h *ApplicationHandler) Pause(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	session.Pause()
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Playback())
}

// StopPlayback halts playback and resets the playhead to zero.
func (h *ApplicationHandler) StopPlayback(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	session.Stop()
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Playback())
}

// SeekPlayback moves the playhead without changing play state.
func (h *ApplicationHandler) SeekPlayback(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(SeekRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse seek JSON: %v", err))
	}

	session.Seek(req.Position)
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Playback())
}

// GetPlayback returns the current play state, playhead position and the
// resolved preview at that position.
func (h *ApplicationHandler) GetPlayback(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Playback())
}
