package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesFieldsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: "json", Output: &buf})

	l.WithContext(Fields{"request_id": "req-1"}).Error("provision failed", errors.New("boom"), Fields{
		"entity_kind": "rider",
	})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "provision failed", line["message"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "rider", line["entity_kind"])
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestParseLogLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLogLevel("verbose").String())
	assert.Equal(t, "warn", parseLogLevel("warn").String())
}
