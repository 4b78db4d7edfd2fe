package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"icpcboard/internal/config"
	"icpcboard/internal/contest"
	"icpcboard/internal/db"
	"icpcboard/internal/export"
)

// recorder stores a finished run in the archive and the export directory,
// whichever are configured.
type recorder struct {
	cfg    config.Config
	logger *log.Logger
}

func (r *recorder) record(runID string, comp *contest.Competition) {
	l := r.logger.With("run", runID)
	if r.cfg.DBPath != "" {
		if err := db.ArchiveRun(runID, comp); err != nil {
			l.Error("Failed to archive run", "error", err)
		} else {
			l.Info("Run archived", "path", r.cfg.DBPath)
		}
	}
	if r.cfg.ExportDir != "" {
		path, err := export.WriteStandings(r.cfg.ExportDir, runID, comp.Standings())
		if err != nil {
			l.Error("Failed to export standings", "error", err)
		} else {
			l.Info("Standings exported", "path", path)
		}
	}
}

// printReport writes an archived run: final standings, then each team's
// score progression.
func printReport(w io.Writer, runID string) error {
	run, err := db.GetRun(runID)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	standings, err := db.GetRunStandings(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "run %s duration %d finished %s\n", run.ID, run.Duration, run.FinishedAt.Format("2006-01-02 15:04:05"))
	for _, s := range standings {
		fmt.Fprintf(w, "%s %d %d %d\n", s.Team, s.Rank, s.Solved, s.Penalty)
	}
	for _, s := range standings {
		points, err := db.GetTeamProgress(runID, s.Team)
		if err != nil {
			return err
		}
		for _, p := range points {
			fmt.Fprintf(w, "  %s @%d solved=%d penalty=%d\n", s.Team, p.Minute, p.Solved, p.Penalty)
		}
	}
	return nil
}
