package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSettings_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validator.New().Struct(DefaultExportSettings()))
}

func TestExportSettings_RejectsUnknownValues(t *testing.T) {
	validate := validator.New()

	cases := []struct {
		name   string
		mutate func(*ExportSettings)
	}{
		{"unknown resolution", func(s *ExportSettings) { s.Resolution = "480p" }},
		{"unknown format", func(s *ExportSettings) { s.Format = "avi" }},
		{"unknown quality", func(s *ExportSettings) { s.Quality = "ultra" }},
		{"missing resolution", func(s *ExportSettings) { s.Resolution = "" }},
		{"missing format", func(s *ExportSettings) { s.Format = "" }},
		{"missing quality", func(s *ExportSettings) { s.Quality = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultExportSettings()
			tc.mutate(&settings)
			assert.Error(t, validate.Struct(settings))
		})
	}
}
