package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"videoforge/composer-api/models"
	"videoforge/composer-api/utils"
)

// CreateProjectRequest defines the expected request body for creating a
// project. Name is required; the rest is optional display metadata.
type CreateProjectRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	AspectRatio  *string `json:"aspect_ratio,omitempty"`
}

// UpdateProjectRequest defines the request body for a partial project
// update. All fields are optional.
type UpdateProjectRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	AspectRatio  *string `json:"aspect_ratio,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// CreateProject inserts a new project row and returns it.
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	req := new(CreateProjectRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationErrorMessage(err))
	}

	row := map[string]interface{}{
		"name":       req.Name,
		"status":     "draft",
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}
	if req.Description != nil {
		row["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		row["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.AspectRatio != nil {
		row["aspect_ratio"] = *req.AspectRatio
	}

	body, _, err := h.DB.From("projects").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not create project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not create project: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		h.Log.WithField("error", fmt.Sprintf("%v", err)).Error("Could not decode created project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode created project")
	}

	h.Log.WithFields(map[string]interface{}{
		"project_id": results[0].ID,
		"name":       results[0].Name,
	}).Info("Project created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, results[0])
}

// ListProjects returns all project rows, newest first.
func (h *ApplicationHandler) ListProjects(c *fiber.Ctx) error {
	body, _, err := h.DB.From("projects").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not list projects")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not list projects: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode projects")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, results)
}

// GetProject returns a single project row by id.
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	body, _, err := h.DB.From("projects").
		Select("*", "", false).
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not fetch project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not fetch project: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode project")
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project %s not found", projectID))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, results[0])
}

// UpdateProject applies a partial update to a project row.
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	req := new(UpdateProjectRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}

	update := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		update["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.AspectRatio != nil {
		update["aspect_ratio"] = *req.AspectRatio
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}

	body, _, err := h.DB.From("projects").
		Update(update, "representation", "").
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not update project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not update project: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not decode updated project")
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project %s not found", projectID))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, results[0])
}

// DeleteProject removes a project row and drops its live session.
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	if _, _, err := h.DB.From("projects").
		Delete("", "").
		Eq("id", projectID.String()).
		Execute(); err != nil {
		h.Log.WithField("error", err.Error()).Error("Could not delete project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete project: %v", err))
	}

	h.Sessions.Delete(projectID)
	h.Log.WithField("project_id", projectID).Info("Project deleted")
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": projectID})
}
