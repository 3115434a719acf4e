package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Layout.Timeout())
	assert.Equal(t, time.Minute, cfg.Poller.Interval())
	assert.Equal(t, 900*time.Millisecond, cfg.Poller.Timeout())
	assert.Equal(t, time.Second, cfg.Naming.Timeout())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
http_addr: ":9090"
log_level: debug
layout:
  timeout_seconds: 5
  programs:
    neato: /opt/graphviz/bin/neato
poller:
  enabled: true
  interval_seconds: 30
  community: lab
naming:
  resolver_addr: 10.0.0.53
  timeout_ms: 250
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr, "env overrides the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Layout.Timeout())
	assert.Equal(t, "/opt/graphviz/bin/neato", cfg.Layout.Programs["neato"])
	assert.True(t, cfg.Poller.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval())
	assert.Equal(t, "lab", cfg.Poller.Community)
	assert.Equal(t, "10.0.0.53", cfg.Naming.ResolverAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.Naming.Timeout())
}

func TestLoad_MissingFileIsOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTPAddr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
