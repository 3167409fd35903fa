package logrus_log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLogService_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		minLevel string
		log      func(ls *LogrusLogService)
		wantLine bool
	}{
		{
			name:     "info passes at info",
			minLevel: "info",
			log:      func(ls *LogrusLogService) { ls.Info(log_service.LogEvent{Message: "hello"}) },
			wantLine: true,
		},
		{
			name:     "debug dropped at info",
			minLevel: "info",
			log:      func(ls *LogrusLogService) { ls.Debug(log_service.LogEvent{Message: "hello"}) },
			wantLine: false,
		},
		{
			name:     "info dropped at warn",
			minLevel: "WARN",
			log:      func(ls *LogrusLogService) { ls.Info(log_service.LogEvent{Message: "hello"}) },
			wantLine: false,
		},
		{
			name:     "error passes at warn",
			minLevel: "warn",
			log:      func(ls *LogrusLogService) { ls.Error(log_service.LogEvent{Message: "hello"}) },
			wantLine: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ls := NewLogrusLogServiceWithWriter(&buf, "run-1", tt.minLevel)

			tt.log(ls)

			assert.Equal(t, tt.wantLine, buf.Len() > 0)
		})
	}
}

func TestLogrusLogService_Fields(t *testing.T) {
	var buf bytes.Buffer
	ls := NewLogrusLogServiceWithWriter(&buf, "run-42", "debug")

	ls.Info(log_service.LogEvent{
		Message:  "Chunk written",
		Metadata: map[string]any{"seq": 3, "size": 1024},
	})

	out := buf.String()
	assert.Contains(t, out, "Chunk written")
	assert.Contains(t, out, "run_id=run-42")
	assert.Contains(t, out, "seq=3")
	assert.Contains(t, out, "size=1024")
}

func TestNewLogrusLogService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandsplit.log")

	ls, err := NewLogrusLogService(path, "run-7", "info")
	require.NoError(t, err)

	ls.Warn(log_service.LogEvent{Message: "written to file"})
	require.NoError(t, ls.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "run_id=run-7")
}

func TestNewLogrusLogService_BadLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sandsplit.log")

	_, err := NewLogrusLogService(path, "run-7", "info")
	assert.Error(t, err)
}
