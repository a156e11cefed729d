package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_LoadsConfigFromFlag(t *testing.T) {
	path := writeConfig(t, "server:\n  httpPort: 9090\nlogger:\n  level: debug\n  output: stdout\n")

	t.Setenv("CONFIG_PATH", "")

	cmd := newRootCommand()
	state := &cliState{configPath: path}
	require.NoError(t, state.load(cmd))

	assert.Equal(t, uint(9090), state.cfg.Server.HttpPort)
	assert.Equal(t, "debug", state.cfg.Logger.Level)
}

func TestRootCommand_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  httpPort: 7070\n")
	t.Setenv("CONFIG_PATH", path)

	cmd := newRootCommand()
	state := &cliState{configPath: defaultConfigPath}
	require.NoError(t, state.load(cmd))

	assert.Equal(t, path, state.configPath)
	assert.Equal(t, uint(7070), state.cfg.Server.HttpPort)
}

func TestRootCommand_MissingConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cmd := newRootCommand()
	state := &cliState{configPath: filepath.Join(t.TempDir(), "absent.yaml")}

	assert.Error(t, state.load(cmd))
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"serve", "sweep", "migrate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
