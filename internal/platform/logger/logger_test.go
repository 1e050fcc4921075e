package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaolo/agri-gateway/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level        string
		debugVisible bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"bogus", false}, // falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := setup(config.ServerConfig{Port: 8080, LogLevel: tt.level}, &buf)
			require.NotNil(t, log)

			log.Debug("debug line")
			assert.Equal(t, tt.debugVisible, buf.Len() > 0)
		})
	}
}

func TestSetupEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "info"}, &buf)

	log.Info("gateway started", "port", 8080)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "gateway started", entry["msg"])
	assert.Equal(t, float64(8080), entry["port"])
}
