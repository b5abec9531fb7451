package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&config.Config{LogFormat: "json", LogLevel: "debug"}, &buf)

	log.WithFields(logrus.Fields{"user_id": 7}).Info("User created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "User created", entry["msg"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&config.Config{LogFormat: "text", LogLevel: "chatty"}, &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Unknown log level")
}

func TestGormLogger(t *testing.T) {
	log := NewWithOutput(&config.Config{LogFormat: "text", LogLevel: "info"}, &bytes.Buffer{})
	assert.NotNil(t, GormLogger(log, true))
	assert.NotNil(t, GormLogger(log, false))
}
