package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bazar-api/pkg/logger"
)

func TestNewRespetaElNivelConfigurado(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.WarnLevel, log.Zerolog().GetLevel())

	// Nivel desconocido cae a info.
	log = logger.New(logger.Config{Env: "production", Level: "ruido", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, log.Zerolog().GetLevel())
}

func TestNewEstampaElNombreDelServicio(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "bazar-api", Out: &buf})

	log.Info().Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "bazar-api", line["service"])
	assert.Equal(t, "hola", line["message"])
}
