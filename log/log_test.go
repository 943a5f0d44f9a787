package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleGating(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, false)))
	defer SetDefault(prev)

	DisableModule(ExecModule)
	Trace(ExecModule, "hidden")
	assert.Empty(t, buf.String())

	EnableModule(ExecModule)
	Trace(ExecModule, "visible", "pc", 4)
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "module=exec")
	assert.Contains(t, buf.String(), "pc=4")
	DisableModule(ExecModule)
}

func TestEnableModulesList(t *testing.T) {
	EnableModules("mem, host")
	assert.True(t, isModuleEnabled(MemModule))
	assert.True(t, isModuleEnabled(HostModule))
	DisableModule(MemModule)
	DisableModule(HostModule)

	EnableModules("all")
	for _, m := range defaultKnownModules {
		assert.True(t, isModuleEnabled(m))
		DisableModule(m)
	}
}

func TestInfoIsNotModuleGated(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, slog.LevelInfo, false)))
	defer SetDefault(prev)

	Info(LoaderModule, "image loaded", "bytes", 8)
	assert.Contains(t, buf.String(), "image loaded")
	assert.Contains(t, buf.String(), "bytes=8")
}

func TestTerminalHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := NewTerminalHandlerWithLevel(&buf, slog.LevelWarn, false)
	lg := NewLogger(h)

	lg.Info("", "dropped")
	lg.Warn("", "kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
