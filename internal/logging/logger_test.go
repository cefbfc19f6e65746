package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewFromConfig_Level(t *testing.T) {
	logger := NewFromConfig(Config{Level: "warn", Format: "json", Output: "discard"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = NewFromConfig(Config{Level: "nonsense", Output: "discard"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Str("algorithm", "levenshtein").Msg("registered")

	assert.Contains(t, buf.String(), `"algorithm":"levenshtein"`)
	assert.Contains(t, buf.String(), `"message":"registered"`)
}

func TestFromContext(t *testing.T) {
	// No logger in context: default
	assert.Equal(t, Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := New(&buf)
	ctx := WithLogger(context.Background(), &logger)

	FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}
