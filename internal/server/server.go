// Package server exposes the scoreboard console over SSH. Every session runs
// its own competition; nothing is shared between sessions.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/charmbracelet/wish/scp"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"

	"icpcboard/internal/config"
	"icpcboard/internal/console"
	"icpcboard/internal/contest"
	"icpcboard/internal/export"
)

// OnEnd receives the competition of a finished session that got past START.
type OnEnd func(runID string, comp *contest.Competition)

func New(cfg config.Config, logger *log.Logger, onEnd OnEnd) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}),
		wish.WithKeyboardInteractiveAuth(func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		}),
	}
	if cfg.ExportDir != "" {
		opts = append(opts, wish.WithSubsystem("sftp", export.SftpSubsystem(cfg.ExportDir)))
	}
	opts = append(opts, wish.WithMiddleware(middlewares(cfg, logger, onEnd)...))

	s, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return s, nil
}

// middlewares returns the session chain, innermost first. With an export
// directory, "scp -f" downloads of exported standings are served before the
// console; uploads are refused.
func middlewares(cfg config.Config, logger *log.Logger, onEnd OnEnd) []wish.Middleware {
	mw := []wish.Middleware{Middleware(logger, onEnd)}
	if cfg.ExportDir != "" {
		mw = append(mw, scp.Middleware(scp.NewFileSystemHandler(cfg.ExportDir), nil))
	}
	return append(mw, logging.Middleware())
}

// Middleware runs a console on the session's stdin and stdout.
func Middleware(logger *log.Logger, onEnd OnEnd) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			runID := uuid.NewString()
			l := logger.With("run", runID, "user", s.User())
			if key := s.PublicKey(); key != nil {
				l = l.With("key", gossh.FingerprintSHA256(key))
			}
			l.Info("Session opened")

			con := console.New(s, l)
			err := con.Run(s.Context(), s)
			if err != nil && !errors.Is(err, context.Canceled) {
				l.Error("Session input failed", "error", err)
			}
			if comp := con.Competition(); comp != nil && onEnd != nil {
				onEnd(runID, comp)
			}
			l.Info("Session closed", "ended", con.Ended())

			next(s)
		}
	}
}
