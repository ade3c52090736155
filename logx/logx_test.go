package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("LEDGER", "sealed block ", 3)
	Warn("POW", "slow search")

	out := buf.String()
	assert.Contains(t, out, "[INFO][LEDGER]")
	assert.Contains(t, out, "sealed block 3")
	assert.Contains(t, out, "[WARN][POW]")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestErrorfReturnsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	err := Errorf("search failed at nonce %d", 42)
	require.Error(t, err)
	assert.Equal(t, "search failed at nonce 42", err.Error())
	assert.Contains(t, buf.String(), "[ERROR][ERROR]")
}

func TestEnvIntFallback(t *testing.T) {
	t.Setenv("LOGFILE_MAX_SIZE_MB", "not-a-number")
	assert.Equal(t, defaultMaxSizeMB, getMaxSize())

	t.Setenv("LOGFILE_MAX_AGE_DAYS", "3")
	assert.Equal(t, 3, getMaxAge())

	t.Setenv("LOGFILE", "node.log")
	assert.Equal(t, "./logs/node.log", getLogFilename())
}
