package server

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/testsession"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpcboard/internal/config"
	"icpcboard/internal/contest"
)

type finished struct {
	runID string
	comp  *contest.Competition
}

func TestMiddleware(t *testing.T) {
	done := make(chan finished, 1)
	h := Middleware(log.New(io.Discard), func(runID string, comp *contest.Competition) {
		done <- finished{runID, comp}
	})(func(ssh.Session) {})

	sess := testsession.New(t, &ssh.Server{Handler: h}, nil)
	var out bytes.Buffer
	sess.Stdin = strings.NewReader("START DURATION 10\nADD_TEAM A\nSUBMIT A p1 Accepted AT 3\nFREEZE\nSCROLL\nEND\n")
	sess.Stdout = &out
	require.NoError(t, sess.Run(""))

	assert.Equal(t, strings.Join([]string{
		"[Info]Competition starts.",
		"[Info]Add successfully.",
		"[Info]Submit successfully.",
		"[Info]Freeze scoreboard.",
		"[Info]Scroll scoreboard.",
		"A 1 1 3",
		"[Info]Competition ends.",
	}, "\n")+"\n", out.String())

	select {
	case f := <-done:
		assert.NotEmpty(t, f.runID)
		require.NotNil(t, f.comp)
		assert.Equal(t, 10, f.comp.Duration())
		assert.Len(t, f.comp.Submissions(), 1)
	case <-time.After(5 * time.Second):
		t.Fatal("session end hook was not called")
	}
}

func TestMiddleware_neverStarted(t *testing.T) {
	called := make(chan struct{}, 1)
	h := Middleware(log.New(io.Discard), func(string, *contest.Competition) {
		called <- struct{}{}
	})(func(ssh.Session) {})

	sess := testsession.New(t, &ssh.Server{Handler: h}, nil)
	var out bytes.Buffer
	sess.Stdin = strings.NewReader("FLUSH\n")
	sess.Stdout = &out
	require.NoError(t, sess.Run(""))

	assert.Equal(t, "[Error]Flush failed: competition has not started.\n", out.String())
	select {
	case <-called:
		t.Fatal("end hook called without a competition")
	default:
	}
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.HostKeyPath = t.TempDir() + "/host_key"
	cfg.Port = 0
	s, err := New(cfg, log.New(io.Discard), nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost:0", s.Addr)
	assert.Contains(t, s.SubsystemHandlers, "sftp")
}

func TestMiddlewares_consoleBehindScp(t *testing.T) {
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	chain := middlewares(cfg, log.New(io.Discard), nil)
	require.Len(t, chain, 3)

	h := ssh.Handler(func(ssh.Session) {})
	for _, m := range chain {
		h = m(h)
	}

	sess := testsession.New(t, &ssh.Server{Handler: h}, nil)
	var out bytes.Buffer
	sess.Stdin = strings.NewReader("START 5\nEND\n")
	sess.Stdout = &out
	require.NoError(t, sess.Run(""))
	assert.Equal(t, "[Info]Competition starts.\n[Info]Competition ends.\n", out.String())
}

func TestMiddlewares_noExportDir(t *testing.T) {
	cfg := config.Default()
	cfg.ExportDir = ""
	assert.Len(t, middlewares(cfg, log.New(io.Discard), nil), 2)
}
