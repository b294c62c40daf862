package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/internal/genclient"
	"videoforge/composer-api/internal/renderclient"
	"videoforge/composer-api/internal/worker"
	"videoforge/composer-api/utils"
)

// ApplicationHandler holds the shared dependencies for all handlers:
// logger, persistence, the live session registry, the external service
// clients and the worker pool.
type ApplicationHandler struct {
	Log        *logrus.Logger
	DB         *supa.Client
	Sessions   *composer.Store
	Gen        *genclient.Client
	Render     *renderclient.Client
	Dispatcher *worker.Dispatcher

	validate *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(log *logrus.Logger, db *supa.Client, sessions *composer.Store, gen *genclient.Client, render *renderclient.Client, dispatcher *worker.Dispatcher) *ApplicationHandler {
	return &ApplicationHandler{
		Log:        log,
		DB:         db,
		Sessions:   sessions,
		Gen:        gen,
		Render:     render,
		Dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// projectSession parses the projectId route param and returns the live
// session for it. A missing session is a 404: the project must be loaded
// or seeded first.
func (h *ApplicationHandler) projectSession(c *fiber.Ctx) (*composer.Session, error) {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return nil, utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	session, ok := h.Sessions.Get(projectID)
	if !ok {
		return nil, utils.RespondWithError(c, fiber.StatusNotFound, "No active session for project; load or seed it first")
	}
	return session, nil
}

// respondEngineError maps engine errors onto HTTP statuses: boundary
// validation failures are 400s, missing entities 404s, anything else 500.
func (h *ApplicationHandler) respondEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, composer.ErrInvalidTrim),
		errors.Is(err, composer.ErrInvalidCrop),
		errors.Is(err, composer.ErrInvalidReorder),
		errors.Is(err, composer.ErrInvalidTransition),
		errors.Is(err, composer.ErrInvalidAudioTrack),
		errors.Is(err, composer.ErrInvalidCaptionWindow),
		errors.Is(err, composer.ErrLastClipTransition):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, composer.ErrClipNotFound),
		errors.Is(err, composer.ErrTransitionNotFound),
		errors.Is(err, composer.ErrAudioClipNotFound),
		errors.Is(err, composer.ErrCaptionNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	default:
		h.Log.WithField("error", err.Error()).Error("Unhandled engine error")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}
}
