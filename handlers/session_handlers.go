package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// IntakeRequest is the wizard hand-off: per-scene script metadata plus the
// generated clip candidates. The first candidate of each scene seeds the
// timeline; the rest stay available for swapping.
type IntakeRequest struct {
	Scenes     []models.SceneMetadata `json:"scenes"`
	Candidates []models.CandidateClip `json:"candidates" validate:"required,min=1"`
}

// ViewRequest adjusts the per-session view preferences.
type ViewRequest struct {
	Zoom        float64 `json:"zoom" validate:"required,gt=0"`
	AspectRatio string  `json:"aspect_ratio" validate:"required,oneof=16:9 9:16 1:1 4:5"`
}

// projectStateRow mirrors the project_states table: one JSONB snapshot per
// project.
type projectStateRow struct {
	ProjectID uuid.UUID       `json:"project_id"`
	State     json.RawMessage `json:"state"`
}

// IntakeProject seeds (or reseeds) a project's editing session from wizard
// output. Reseeding replaces the clip sequence wholesale.
func (h *ApplicationHandler) IntakeProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	req := new(IntakeRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse intake JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	candidates := make(map[int][]models.CandidateClip)
	for _, cand := range req.Candidates {
		candidates[cand.SceneNumber] = append(candidates[cand.SceneNumber], cand)
	}

	session := h.Sessions.GetOrCreate(projectID)
	session.Intake(candidates, req.Scenes)

	h.Log.WithFields(map[string]interface{}{
		"project_id": projectID,
		"scenes":     len(candidates),
	}).Info("Session seeded from wizard intake")
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"project_id": projectID,
		"clips":      session.Clips(),
	})
}

// GetTimeline returns the full resolved editing state for a project.
func (h *ApplicationHandler) GetTimeline(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	zoom, aspect := session.View()
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"clips":          session.Clips(),
		"transitions":    session.Transitions(),
		"audio_clips":    session.AudioClips(),
		"captions":       session.Captions(),
		"caption_style":  session.CaptionStyle(),
		"settings":       session.ExportSettings(),
		"total_duration": session.TotalDuration(),
		"zoom":           zoom,
		"aspect_ratio":   aspect,
	})
}

// SaveSession persists the session snapshot to the project_states table,
// upserting on project_id.
func (h *ApplicationHandler) SaveSession(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	snap := session.Snapshot()
	state, err := json.Marshal(snap)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not encode session state: %v", err))
	}

	row := map[string]interface{}{
		"project_id": snap.ProjectID,
		"state":      json.RawMessage(state),
		"updated_at": time.Now(),
	}
	if _, _, err := h.DB.From("project_states").
		Insert(row, true, "project_id", "minimal", "").
		Execute(); err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not save session state")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not save session state: %v", err))
	}

	h.Log.WithField("project_id", snap.ProjectID).Info("Session state saved")
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"project_id": snap.ProjectID})
}

// LoadSession restores a project's session from its persisted snapshot.
// The restored session comes back stopped at t=0 with nothing selected.
func (h *ApplicationHandler) LoadSession(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	body, _, err := h.DB.From("project_states").
		Select("project_id,state", "", false).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not fetch session state")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not fetch session state: %v", err))
	}

	var rows []projectStateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode session state")
	}
	if len(rows) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("No saved state for project %s", projectID))
	}

	var snap composer.SessionSnapshot
	if err := json.Unmarshal(rows[0].State, &snap); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Corrupt session state: %v", err))
	}
	snap.ProjectID = projectID

	session := composer.RestoreSession(snap)
	h.Sessions.Put(session)

	h.Log.WithField("project_id", projectID).Info("Session state restored")
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"project_id": projectID,
		"clips":      session.Clips(),
	})
}

// SetView stores per-session zoom and aspect ratio preferences.
func (h *ApplicationHandler) SetView(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	req := new(ViewRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse view JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	session.SetView(req.Zoom, req.AspectRatio)
	zoom, aspect := session.View()
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"zoom": zoom, "aspect_ratio": aspect})
}
