package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"videoforge/composer-api/internal/renderclient"
	"videoforge/composer-api/models"
)

const renderSubmitTimeout = 2 * time.Minute

// SubmitRenderJob hands a composition snapshot to the render service and
// records the service's initial status on the persisted render job row.
type SubmitRenderJob struct {
	JobKey      string
	RenderJobID uuid.UUID
	Payload     models.RenderPayload
	Client      *renderclient.Client
	DB          *supa.Client
	Log         *logrus.Logger
}

// ID returns the job's queue identifier.
func (j *SubmitRenderJob) ID() string { return j.JobKey }

// Execute submits the payload and updates the render_jobs row with the
// opaque status triple reported back. A submission failure marks the row
// failed; the composition itself is untouched either way.
func (j *SubmitRenderJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), renderSubmitTimeout)
	defer cancel()

	status, err := j.Client.Submit(ctx, j.Payload)
	if err != nil {
		j.markFailed(err)
		return err
	}

	update := map[string]interface{}{
		"render_id":  status.RenderID,
		"status":     status.Status,
		"progress":   status.Progress,
		"message":    status.Message,
		"updated_at": time.Now(),
	}
	if _, _, dbErr := j.DB.From("render_jobs").
		Update(update, "", "").
		Eq("id", j.RenderJobID.String()).
		Execute(); dbErr != nil {
		j.Log.WithFields(logrus.Fields{
			"render_job_id": j.RenderJobID,
			"error":         dbErr.Error(),
		}).Error("Could not record render status")
		return dbErr
	}

	j.Log.WithFields(logrus.Fields{
		"render_job_id": j.RenderJobID,
		"status":        status.Status,
	}).Info("Render submitted")
	return nil
}

func (j *SubmitRenderJob) markFailed(cause error) {
	msg := cause.Error()
	update := map[string]interface{}{
		"status":        "failed",
		"error_message": msg,
		"updated_at":    time.Now(),
	}
	if _, _, err := j.DB.From("render_jobs").
		Update(update, "", "").
		Eq("id", j.RenderJobID.String()).
		Execute(); err != nil {
		j.Log.WithFields(logrus.Fields{
			"render_job_id": j.RenderJobID,
			"error":         err.Error(),
		}).Error("Could not mark render job failed")
	}
}
