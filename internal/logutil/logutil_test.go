package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsShared(t *testing.T) {
	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "", "warn", "WARNING", "error"} {
		logger, err := New(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger, level)
	}

	_, err := New("verbose")
	assert.Error(t, err)
}
