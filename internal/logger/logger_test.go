package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alkime/storyform/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		debugOn bool
		infoOn  bool
	}{
		{"development is verbose", config.Config{Env: "development", LogLevel: "info"}, true, true},
		{"production info", config.Config{Env: config.EnvProduction, LogLevel: "info"}, false, true},
		{"explicit debug", config.Config{Env: config.EnvProduction, LogLevel: "debug"}, true, true},
		{"errors only", config.Config{Env: config.EnvProduction, LogLevel: "error"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, &tt.cfg)

			assert.Equal(t, tt.debugOn, l.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.infoOn, l.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, &config.Config{Env: config.EnvProduction})

	l.Info("story published", "story_uid", "abc")

	assert.Contains(t, buf.String(), `"msg":"story published"`)
	assert.Contains(t, buf.String(), `"story_uid":"abc"`)
}
