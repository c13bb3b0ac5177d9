package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644)
	require.NoError(t, err)
	return dir
}

func TestNewApplication(t *testing.T) {
	dir := writeConfig(t, `
upstream:
  baseURL: https://results.example.edu
server:
  publicURL: https://rez.example.com
  port: 4567
`)

	application, err := NewApplication(Config{ConfigPath: dir})
	require.NoError(t, err)
	defer application.sessions.Stop()
	defer application.blacklist.Stop()

	assert.Equal(t, "0.0.0.0:4567", application.httpServer.Addr)
	assert.NotNil(t, application.tools)
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	dir := writeConfig(t, `
upstream:
  baseURL: https://results.example.edu
`)

	_, err := NewApplication(Config{ConfigPath: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publicURL")
}

func TestNewApplication_SweepShorterThanTokenTTL(t *testing.T) {
	dir := writeConfig(t, `
upstream:
  baseURL: https://results.example.edu
server:
  publicURL: https://rez.example.com
auth:
  tokenTTL: 10m
  sweepInterval: 1m
`)

	_, err := NewApplication(Config{ConfigPath: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweepInterval")
}
