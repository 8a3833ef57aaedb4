package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer) {
	d := NewDiagnosticSystem(level)
	d.useColors = false
	d.showTime = false
	buf := &bytes.Buffer{}
	d.SetOutput(buf)
	return d, buf
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	t.Run("info level suppresses verbose and debug", func(t *testing.T) {
		d, buf := newBufferedDiagnostics(DiagnosticInfo)

		d.Error("error message")
		d.Warn("warn message")
		d.Info("info message")
		d.Verbose("verbose message")
		d.Debug("debug message")

		output := buf.String()
		assert.Contains(t, output, "[ERROR] error message")
		assert.Contains(t, output, "[WARN] warn message")
		assert.Contains(t, output, "[INFO] info message")
		assert.NotContains(t, output, "verbose message")
		assert.NotContains(t, output, "debug message")
	})

	t.Run("quiet shows only errors", func(t *testing.T) {
		d := NewQuietDiagnostics()
		d.useColors = false
		buf := &bytes.Buffer{}
		d.SetOutput(buf)

		d.Error("error message")
		d.Warn("warn message")
		d.Info("info message")

		output := buf.String()
		assert.Contains(t, output, "error message")
		assert.NotContains(t, output, "warn message")
		assert.NotContains(t, output, "info message")
	})

	t.Run("formats arguments", func(t *testing.T) {
		d, buf := newBufferedDiagnostics(DiagnosticInfo)
		d.Info("found %d entry points in %s", 3, "actions")
		assert.Contains(t, buf.String(), "found 3 entry points in actions")
	})
}

func TestDiagnosticSystem_Indentation(t *testing.T) {
	d, buf := newBufferedDiagnostics(DiagnosticInfo)

	d.Info("top")
	d.Indent()
	d.Info("nested")
	d.Unindent()
	d.Unindent() // extra unindent must not go negative
	d.Info("back")

	output := buf.String()
	assert.Contains(t, output, "[INFO] top")
	assert.Contains(t, output, "  [INFO] nested")
	assert.Contains(t, output, "\n[INFO] back")
}

func TestDiagnosticSystem_Progress(t *testing.T) {
	t.Run("successful step", func(t *testing.T) {
		d, buf := newBufferedDiagnostics(DiagnosticInfo)

		d.StartProgress("Scanning packages")
		d.EndProgress(true, "4 packages")

		output := buf.String()
		assert.Contains(t, output, "Scanning packages")
		assert.Contains(t, output, "(4 packages)")
	})

	t.Run("quiet level stays silent", func(t *testing.T) {
		d := NewQuietDiagnostics()
		d.useColors = false
		buf := &bytes.Buffer{}
		d.SetOutput(buf)

		d.StartProgress("Scanning packages")
		d.EndProgress(true, "")
		assert.Empty(t, buf.String())
	})
}

func TestDiagnosticSystem_Summary(t *testing.T) {
	d, buf := newBufferedDiagnostics(DiagnosticInfo)

	d.Summary("Generation Complete!", map[string]interface{}{
		"Packages processed": 2,
	})

	output := buf.String()
	assert.Contains(t, output, "Generation Complete!")
	assert.Contains(t, output, "Packages processed: 2")
}
