package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpcboard/internal/config"
	"icpcboard/internal/contest"
	"icpcboard/internal/db"
)

func TestRun_flagsFixInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icpcboard.yml")
	body := "board:\n  port: 70000\n  log_level: loud\n  archive: \"\"\n  export_dir: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	err := run([]string{"--config", path}, strings.NewReader("END\n"), &bytes.Buffer{})
	require.Error(t, err)

	var out bytes.Buffer
	args := []string{"--config", path, "--port", "2300", "--log-level", "error"}
	require.NoError(t, run(args, strings.NewReader("START 5\nEND\n"), &out))
	assert.Equal(t, "[Info]Competition starts.\n[Info]Competition ends.\n", out.String())
}

func TestRun_closesArchiveOnError(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "archive.sqlite")
	args := []string{"--archive", archive, "--export-dir", "", "--log-level", "error", "--report", "missing"}

	err := run(args, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)

	// The deferred close ran before run returned.
	require.ErrorIs(t, db.ArchiveRun("x", contest.New(1)), db.ErrNotInitialized)
}

func TestRun_consoleArchivesRun(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"--archive", filepath.Join(dir, "archive.sqlite"),
		"--export-dir", filepath.Join(dir, "standings"),
		"--log-level", "error",
	}
	require.NoError(t, run(args, strings.NewReader("START 5\nADD_TEAM A\nEND\n"), &bytes.Buffer{}))

	files, err := os.ReadDir(filepath.Join(dir, "standings"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(filepath.Join(dir, "standings", files[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "A 1 0 0\n", string(data))
}

func TestApplyFlags(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--host", "0.0.0.0", "--archive", ""}))
	cfg := config.Default()
	applyFlags(&cfg, fs)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, config.Port, cfg.Port)
	assert.Equal(t, config.ExportDir, cfg.ExportDir)
}
