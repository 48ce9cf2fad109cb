package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelFallback(t *testing.T) {
	l := NewWithOutput(&bytes.Buffer{}, "json", "nonsense")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l = NewWithOutput(&bytes.Buffer{}, "text", "debug")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestErrorFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "json", "info")
	Error(l, "settings", "ReplaceLogo", "remove old logo", map[string]string{"path": "/tmp/x.png"}, errors.New("permission denied"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "permission denied", entry["msg"])
	assert.Equal(t, "settings", entry["module"])
	assert.Equal(t, "ReplaceLogo", entry["funcName"])
	assert.NotNil(t, entry["data"])
}
