package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FansOutToExtraWriters(t *testing.T) {
	var term, file bytes.Buffer
	logger := NewWithWriter(&term, slog.LevelInfo, &file)

	logger.Info("trace finished", "error", errors.New("boom"))
	logger.Debug("hidden")

	assert.Contains(t, term.String(), "err=boom")
	assert.Contains(t, file.String(), `"err":"boom"`)
	assert.NotContains(t, term.String(), "hidden")
	assert.NotContains(t, file.String(), "hidden")
}

func TestNew_SingleWriter(t *testing.T) {
	var term bytes.Buffer
	logger := NewWithWriter(&term, slog.LevelDebug, nil)

	logger.Debug("visible")

	assert.Contains(t, term.String(), "visible")
}
