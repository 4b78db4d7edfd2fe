package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"icpcboard/internal/config"
	"icpcboard/internal/console"
	"icpcboard/internal/db"
	"icpcboard/internal/server"
	"icpcboard/internal/util"
)

func main() {
	util.Must(run(os.Args[1:], os.Stdin, os.Stdout))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("icpcboard", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.Bool("serve", false, "serve one console per SSH session instead of reading stdin")
	fs.String("host", config.Host, "SSH listen host")
	fs.IntP("port", "p", config.Port, "SSH listen port")
	fs.String("archive", config.DBPath, "sqlite archive for finished runs (empty disables)")
	fs.String("export-dir", config.ExportDir, "directory for exported standings (empty disables)")
	fs.String("log-level", config.LogLevel, "log level: debug, info, warn, error")
	fs.String("report", "", "print an archived run by id and exit")
	return fs
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("host") {
		cfg.Host, _ = fs.GetString("host")
	}
	if fs.Changed("port") {
		cfg.Port, _ = fs.GetInt("port")
	}
	if fs.Changed("archive") {
		cfg.DBPath, _ = fs.GetString("archive")
	}
	if fs.Changed("export-dir") {
		cfg.ExportDir, _ = fs.GetString("export-dir")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, fs)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.Level(),
		Prefix:          "icpcboard",
	})

	if cfg.DBPath != "" {
		if err := db.Init(cfg.DBPath); err != nil {
			return fmt.Errorf("initialize archive %s: %w", cfg.DBPath, err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close archive", "error", err)
			}
		}()
	}
	rec := &recorder{cfg: cfg, logger: logger}

	report, _ := fs.GetString("report")
	serve, _ := fs.GetBool("serve")
	switch {
	case report != "":
		if cfg.DBPath == "" {
			return errors.New("--report needs an archive")
		}
		return printReport(stdout, report)
	case serve:
		return runServer(cfg, logger, rec)
	default:
		return runConsole(stdin, stdout, logger, rec)
	}
}

func runConsole(stdin io.Reader, stdout io.Writer, logger *log.Logger, rec *recorder) error {
	con := console.New(stdout, logger)
	err := con.Run(context.Background(), stdin)
	if comp := con.Competition(); comp != nil {
		rec.record(uuid.NewString(), comp)
	}
	return err
}

func runServer(cfg config.Config, logger *log.Logger, rec *recorder) error {
	s, err := server.New(cfg, logger, rec.record)
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)
	logger.Info("Starting SSH server", "host", cfg.Host, "port", cfg.Port)

	listenErr := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-listenErr:
		return fmt.Errorf("could not start server: %w", err)
	}

	logger.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("stop server: %w", err)
	}
	return nil
}
