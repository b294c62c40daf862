package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videoforge/composer-api/internal/jobs"
	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// UpdateExportSettings validates and stores the project's export settings.
func (h *ApplicationHandler) UpdateExportSettings(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	settings := new(models.ExportSettings)
	if err := c.BodyParser(settings); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse settings JSON: %v", err))
	}
	if err := h.validate.Struct(settings); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	session.SetExportSettings(*settings)
	return utils.RespondWithJSON(c, fiber.StatusOK, session.ExportSettings())
}

// GetExportSettings returns the project's current export settings.
func (h *ApplicationHandler) GetExportSettings(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, session.ExportSettings())
}

// StartRender snapshots the composition, records a render job row and
// queues the submission to the external render service. Rendering itself
// happens entirely out of process; the row tracks the opaque status the
// service reports back.
func (h *ApplicationHandler) StartRender(c *fiber.Ctx) error {
	session, err := h.projectSession(c)
	if err != nil {
		return err
	}

	payload := session.BuildRenderPayload()
	if len(payload.Clips) == 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot render an empty timeline")
	}

	row := map[string]interface{}{
		"project_id": session.ProjectID,
		"status":     "queued",
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}
	body, _, err := h.DB.From("render_jobs").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not create render job")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not create render job: %v", err))
	}

	var created []models.RenderJob
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode created render job")
	}

	job := &jobs.SubmitRenderJob{
		JobKey:      fmt.Sprintf("submit-render-%s", created[0].ID),
		RenderJobID: created[0].ID,
		Payload:     payload,
		Client:      h.Render,
		DB:          h.DB,
		Log:         h.Log,
	}
	if !h.Dispatcher.Submit(job) {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Render queue is full, try again later")
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id":    session.ProjectID,
		"render_job_id": created[0].ID,
	}).Info("Render queued")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, created[0])
}

// GetRenderJob returns one render job row by id.
func (h *ApplicationHandler) GetRenderJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid render job ID format")
	}

	job, err := h.fetchRenderJob(jobID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not fetch render job: %v", err))
	}
	if job == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Render job %s not found", jobID))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, job)
}

// RefreshRenderJob polls the render service for the job's current status
// and writes the reported triple back to the row.
func (h *ApplicationHandler) RefreshRenderJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid render job ID format")
	}

	job, err := h.fetchRenderJob(jobID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not fetch render job: %v", err))
	}
	if job == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Render job %s not found", jobID))
	}
	if job.RenderID == nil {
		return utils.RespondWithJSON(c, fiber.StatusOK, job)
	}

	status, err := h.Render.Status(c.Context(), *job.RenderID)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not poll render status")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("Could not poll render status: %v", err))
	}

	update := map[string]interface{}{
		"status":     status.Status,
		"progress":   status.Progress,
		"message":    status.Message,
		"updated_at": time.Now(),
	}
	if status.OutputURL != "" {
		update["output_url"] = status.OutputURL
		update["completed_at"] = time.Now()
	}
	body, _, err := h.DB.From("render_jobs").
		Update(update, "representation", "").
		Eq("id", jobID.String()).
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not record render status")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not record render status: %v", err))
	}

	var updated []models.RenderJob
	if err := json.Unmarshal(body, &updated); err != nil || len(updated) == 0 {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode updated render job")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated[0])
}

func (h *ApplicationHandler) fetchRenderJob(jobID uuid.UUID) (*models.RenderJob, error) {
	body, _, err := h.DB.From("render_jobs").
		Select("*", "", false).
		Eq("id", jobID.String()).
		Execute()
	if err != nil {
		return nil, err
	}
	var rows []models.RenderJob
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
