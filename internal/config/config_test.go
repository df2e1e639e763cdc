package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSubstitutesEnvReferences(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZBX_USER", "svc-account")
	t.Setenv("ZBX_PASSWORD", "s3cret")

	path := writeFile(t, dir, "source.yaml", `
sources:
  - id: 1
    host: zabbix.internal
    port: 80
    poll_interval_sec: 30
    retry_interval_sec: 10
    user: ${ZBX_USER}
    password: ${ZBX_PASSWORD}
normalized:
  dsn: ./asura.db
raw_cache:
  dir: ./raw
`)

	doc, err := Load(path, "")
	require.NoError(t, err)
	require.Len(t, doc.Sources, 1)
	assert.Equal(t, "svc-account", doc.Sources[0].User)
	assert.Equal(t, "s3cret", doc.Sources[0].Password)
	assert.Equal(t, "http://zabbix.internal:80/zabbix/api_jsonrpc.php", doc.Sources[0].URI())
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "source.yaml", `
sources:
  - id: 1
    host: zabbix.internal
    port: 80
normalized:
  dsn: ./asura.db
raw_cache:
  dir: ./raw
`)

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources[0]")
}

func TestLoadRejectsDuplicateSourceIDs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZBX_USER", "u")
	t.Setenv("ZBX_PASSWORD", "p")
	path := writeFile(t, dir, "source.yaml", `
sources:
  - id: 1
    host: a
    port: 80
    user: ${ZBX_USER}
    password: ${ZBX_PASSWORD}
  - id: 1
    host: b
    port: 80
    user: ${ZBX_USER}
    password: ${ZBX_PASSWORD}
normalized:
  dsn: ./asura.db
raw_cache:
  dir: ./raw
`)

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate source id")
}
