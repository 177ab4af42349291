package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollbarLogger_PrintsWithoutToken(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0), Options{Environment: "test"})

	l.Warn("collaborator rejected request", map[string]interface{}{"verb": "login"})
	l.Error("collaborator call failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[WARN] collaborator rejected request")
	assert.Contains(t, out, "map[verb:login]")
	assert.Contains(t, out, "[ERROR] collaborator call failed")
	assert.Contains(t, out, "boom")
}
