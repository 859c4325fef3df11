package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelInfo},
		{in: "debug", want: LevelDebug},
		{in: "WARN", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: " error ", want: LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelWarn)

	log.Info("hidden %d", 1)
	log.Warn("shown %d", 2)
	log.Error("shown %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
	assert.Contains(t, out, "[ERROR] shown 3")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := t.TempDir() + "/app.log"

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("hello %s", "file")
	require.NoError(t, log.Close())
	// повторный Close не должен падать
	require.NoError(t, log.Close())
}
