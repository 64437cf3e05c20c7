package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", false)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Int("row", 3).Msg("dropping incomplete record")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "dropping incomplete record", line["message"])
	assert.EqualValues(t, 3, line["row"])
	assert.Contains(t, line, "time")
}

func TestNew_DefaultLevel(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, "", false)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)
	assert.Error(t, err)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "DEBUG", true)
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background())
	zerolog.Ctx(ctx).Debug().Str("file", "companies.csv").Msg("loaded records")

	assert.Contains(t, buf.String(), "loaded records")
	assert.Contains(t, buf.String(), "file=companies.csv")
}
