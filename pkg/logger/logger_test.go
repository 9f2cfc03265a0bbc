package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func Test_NewLogger(t *testing.T) {
	t.Run("Should default to info level", func(t *testing.T) {
		l, err := NewLogger(&LoggerConfig{})
		assert.Nil(t, err)
		assert.False(t, l.Core().Enabled(zap.DebugLevel))
		assert.True(t, l.Core().Enabled(zap.InfoLevel))
	})
	t.Run("Should enable debug level", func(t *testing.T) {
		l, err := NewLogger(&LoggerConfig{Debug: true})
		assert.Nil(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})
}
