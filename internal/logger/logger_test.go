package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/propusage/internal/config"
	"github.com/scan-io-git/propusage/internal/observe"
)

var _ observe.Logger = hclog.NewNullLogger()

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		cfgLevel string
		want     hclog.Level
	}{
		{name: "config level", cfgLevel: "debug", want: hclog.Debug},
		{name: "env overrides config", env: "error", cfgLevel: "debug", want: hclog.Error},
		{name: "empty defaults to info", want: hclog.Info},
		{name: "unknown defaults to info", cfgLevel: "loud", want: hclog.Info},
		{name: "trace", cfgLevel: "TRACE", want: hclog.Trace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvLogLevel, tt.env)
			cfg := &config.Config{Logger: config.Logger{Level: tt.cfgLevel}}

			var buf bytes.Buffer
			assert.Equal(t, tt.want, determineLogLevel(cfg, &buf))
		})
	}
}

func TestUnknownLevelWarns(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	var buf bytes.Buffer

	NewLoggerWithOutput(&config.Config{Logger: config.Logger{Level: "loud"}}, "check", &buf)
	assert.Contains(t, buf.String(), "Unrecognized log level")
}

func TestNewLoggerJSON(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	cfg := config.Default()
	cfg.Logger.JSONFormat = config.BoolPtr(true)

	var buf bytes.Buffer
	log := NewLoggerWithOutput(cfg, "check", &buf)
	log.Debug("hidden")
	log.Info("property not used", "key", "a.b")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "property not used", entry["@message"])
	assert.Equal(t, "check", entry["@module"])
	assert.Equal(t, "a.b", entry["key"])
	assert.NotContains(t, buf.String(), "hidden")
}
