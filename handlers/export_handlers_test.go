package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/models"
)

func exportSettingsApp(t *testing.T) (*fiber.App, *composer.Session) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := composer.NewStore()
	session := sessions.GetOrCreate(uuid.New())

	h := NewApplicationHandler(log, nil, sessions, nil, nil, nil)
	app := fiber.New()
	app.Put("/projects/:projectId/export/settings", h.UpdateExportSettings)
	return app, session
}

func putSettings(t *testing.T, app *fiber.App, projectID uuid.UUID, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPut, "/projects/"+projectID.String()+"/export/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestUpdateExportSettings_StoresValidSettings(t *testing.T) {
	app, session := exportSettingsApp(t)

	status := putSettings(t, app, session.ProjectID,
		`{"resolution":"720p","format":"webm","quality":"draft","include_audio":true,"include_captions":false,"caption_burn_in":false}`)
	assert.Equal(t, fiber.StatusOK, status)

	stored := session.ExportSettings()
	assert.Equal(t, models.Resolution720p, stored.Resolution)
	assert.Equal(t, models.FormatWebM, stored.Format)
	assert.Equal(t, models.QualityDraft, stored.Quality)
	assert.False(t, stored.IncludeCaptions)
}

func TestUpdateExportSettings_RejectsUnknownValues(t *testing.T) {
	app, session := exportSettingsApp(t)

	bodies := []string{
		`{"resolution":"480p","format":"mp4","quality":"high"}`,
		`{"resolution":"1080p","format":"avi","quality":"high"}`,
		`{"resolution":"1080p","format":"mp4","quality":"ultra"}`,
		`{"format":"mp4","quality":"high"}`,
	}
	for _, body := range bodies {
		status := putSettings(t, app, session.ProjectID, body)
		assert.Equal(t, fiber.StatusBadRequest, status, "body %s", body)
	}

	// Rejected settings never reach the session.
	assert.Equal(t, models.DefaultExportSettings(), session.ExportSettings())
}
