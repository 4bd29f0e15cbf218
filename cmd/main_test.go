package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := rootCmd()

	assert.Equal(t, "beetbox", cmd.Use)
	assert.NotEmpty(t, cmd.Version)
	require.NotNil(t, cmd.Flags().ShorthandLookup("c"))
	assert.Equal(t, "beep", cmd.Flags().Lookup("audio").DefValue)
}

func TestRootCmd_RejectsUnknownAudioBackend(t *testing.T) {
	isolateConfig(t)

	cmd := rootCmd()
	cmd.SetArgs([]string{"--audio", "alsa"})
	cmd.SetOut(os.Stderr)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player.audio")
}

func TestRootCmd_BadConfigFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[player\n"), 0o600))

	cmd := rootCmd()
	cmd.SetArgs([]string{"--config", path})

	assert.Error(t, cmd.Execute())
}
