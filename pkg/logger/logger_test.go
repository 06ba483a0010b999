package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOutput("debug", buf)

	log.WithField("outbreak_id", "42").Debug("Outbreak assigned")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Outbreak assigned", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "42", entry["outbreak_id"])
	assert.Equal(t, serviceName, entry["service"])
}

func TestNewWithOutput_KeepsServiceField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOutput("info", buf)

	log.WithField("service", "analysis").Info("Rate table computed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analysis", entry["service"])
}

func TestNew_InvalidLevel(t *testing.T) {
	log := New("verbose")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
