package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func TestLogCommand(t *testing.T) {
	buf := captureGlobal(t)

	LogCommand("hdiutil", []string{"create", "-volname", "Demo", "-ov"})

	output := buf.String()
	assert.Contains(t, output, `"command":"hdiutil"`)
	assert.Contains(t, output, `"args":["create","-volname","Demo","-ov"]`)
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "assemble")
	assert.Contains(t, buf.String(), "Operation started")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, `"duration"`)
	assert.Equal(t, 2, strings.Count(output, `"operation":"assemble"`))
}

func TestGetLogger_Component(t *testing.T) {
	buf := captureGlobal(t)

	GetLogger("diskimage").Info().Msg("Disk image created")

	assert.Contains(t, buf.String(), `"component":"diskimage"`)
}
