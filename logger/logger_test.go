package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		level       string
		logDebug    bool
	}{
		{description: "default level is info", level: "", logDebug: false},
		{description: "debug level", level: "debug", logDebug: true},
		{description: "invalid level falls back to info", level: "loud", logDebug: false},
	}
	for _, testCase := range testCases {
		buf := &bytes.Buffer{}
		log := New(&Config{Level: testCase.level}, buf)
		log.Debug().Str("k", "v").Msg("debug message")
		log.Info().Msg("info message")
		assert.Equal(t, testCase.logDebug, bytes.Contains(buf.Bytes(), []byte("debug message")), testCase.description)
		assert.True(t, bytes.Contains(buf.Bytes(), []byte("info message")), testCase.description)
	}
}
