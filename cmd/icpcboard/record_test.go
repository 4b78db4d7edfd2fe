package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpcboard/internal/config"
	"icpcboard/internal/contest"
	"icpcboard/internal/db"
)

func TestRecorder(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "archive.sqlite")
	cfg.ExportDir = filepath.Join(dir, "standings")
	require.NoError(t, db.Init(cfg.DBPath))
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	comp := contest.New(300)
	require.NoError(t, comp.AddTeam("A"))
	require.NoError(t, comp.AddTeam("B"))
	require.NoError(t, comp.Submit(contest.Submission{Team: "A", Problem: "p1", Status: "Wrong", Minute: 10}))
	require.NoError(t, comp.Submit(contest.Submission{Team: "A", Problem: "p1", Status: contest.Accepted, Minute: 15}))
	require.NoError(t, comp.Submit(contest.Submission{Team: "B", Problem: "p1", Status: contest.Accepted, Minute: 5}))

	rec := &recorder{cfg: cfg, logger: log.New(io.Discard)}
	rec.record("run-1", comp)

	data, err := os.ReadFile(filepath.Join(cfg.ExportDir, "run-1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "B 1 1 5\nA 2 1 35\n", string(data))

	var out bytes.Buffer
	require.NoError(t, printReport(&out, "run-1"))
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, got, 5)
	assert.True(t, strings.HasPrefix(got[0], "run run-1 duration 300 finished "))
	assert.Equal(t, []string{
		"B 1 1 5",
		"A 2 1 35",
		"  B @5 solved=1 penalty=5",
		"  A @15 solved=1 penalty=35",
	}, got[1:])
}

func TestPrintReport_unknownRun(t *testing.T) {
	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "archive.sqlite")))
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	require.Error(t, printReport(io.Discard, "missing"))
}
