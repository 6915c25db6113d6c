package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	buf := capture(t, true)

	Debug("parsed %d units", 3)
	Info("wrote %s", "paper.pdf")
	Section("Generation")

	assert.Equal(t, "[DEBUG] parsed 3 units\n[INFO] wrote paper.pdf\n\n=== Generation ===\n", buf.String())
}

func TestQuietSuppressesDebugAndInfo(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestWarnAndErrorAlwaysPrint(t *testing.T) {
	buf := capture(t, false)

	Warn("skipping page %d", 2)
	Error("generation failed for %q", "Unit 1")

	assert.Equal(t, "[WARN] skipping page 2\n[ERROR] generation failed for \"Unit 1\"\n", buf.String())
}
