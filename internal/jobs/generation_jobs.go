// Package jobs defines the asynchronous work units submitted to the
// worker pool: media generation fetches and render submissions. Every job
// applies results to the session through named commands only; a failed
// external call leaves engine state untouched so the caller can retry.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/internal/genclient"
	"videoforge/composer-api/models"
)

const generationTimeout = 5 * time.Minute

// GenerateClipJob fetches a new clip variant for a scene and attaches it
// to the placeholder clip on the timeline.
type GenerateClipJob struct {
	JobKey        string
	Session       *composer.Session
	Client        *genclient.Client
	ClipID        uuid.UUID
	SceneNumber   int
	VariantNumber int
	Prompt        string
	Log           *logrus.Logger
}

// ID returns the job's queue identifier.
func (j *GenerateClipJob) ID() string { return j.JobKey }

// Execute calls the generation service and, on success, attaches the
// media to the target clip.
func (j *GenerateClipJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	asset, err := j.Client.GenerateClip(ctx, j.SceneNumber, j.VariantNumber, j.Prompt)
	if err != nil {
		return err
	}

	if err := j.Session.SetClipMedia(j.ClipID, asset.MediaURL, asset.Duration); err != nil {
		return err
	}
	j.Log.WithFields(logrus.Fields{
		"clip_id": j.ClipID,
		"scene":   j.SceneNumber,
	}).Info("Clip media attached")
	return nil
}

// GenerateVoiceoverJob fetches a voiceover for a scene's dialogue and
// places it on the voiceover track, replacing any previous one.
type GenerateVoiceoverJob struct {
	JobKey      string
	Session     *composer.Session
	Client      *genclient.Client
	SceneNumber int
	Dialogue    string
	Log         *logrus.Logger
}

// ID returns the job's queue identifier.
func (j *GenerateVoiceoverJob) ID() string { return j.JobKey }

// Execute calls the generation service and, on success, places the
// voiceover from the current clip order.
func (j *GenerateVoiceoverJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	asset, err := j.Client.GenerateVoiceover(ctx, j.SceneNumber, j.Dialogue)
	if err != nil {
		return err
	}

	clip := models.AudioClip{
		Type:     models.AudioTrackVoiceover,
		MediaURL: asset.MediaURL,
		Duration: asset.Duration,
		Volume:   100,
		Label:    "Scene voiceover",
	}
	if _, err := j.Session.PlaceVoiceover(clip, j.SceneNumber); err != nil {
		return err
	}
	j.Log.WithField("scene", j.SceneNumber).Info("Voiceover placed")
	return nil
}
