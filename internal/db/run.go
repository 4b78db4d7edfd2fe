package db

import (
	"fmt"
	"time"

	"icpcboard/internal/contest"
)

type Run struct {
	ID         string
	Duration   int
	Frozen     bool
	FinishedAt time.Time
}

// ArchiveRun stores the final standings and the full submission log of a
// competition under runID in one transaction.
func ArchiveRun(runID string, comp *contest.Competition) error {
	conn, err := handle()
	if err != nil {
		return err
	}
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	_, err = tx.Exec("INSERT INTO runs (id, duration, frozen, finished_at) VALUES (?, ?, ?, ?)",
		runID, comp.Duration(), comp.Mode() == contest.Frozen, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	for _, s := range comp.Standings() {
		_, err := tx.Exec("INSERT INTO standings (run_id, rank, team, solved, penalty) VALUES (?, ?, ?, ?, ?)",
			runID, s.Rank, s.Team, s.Solved, s.Penalty)
		if err != nil {
			return fmt.Errorf("insert standing %q: %w", s.Team, err)
		}
	}

	for i, sub := range comp.Submissions() {
		_, err := tx.Exec("INSERT INTO submissions (run_id, seq, team, problem, status, minute) VALUES (?, ?, ?, ?, ?, ?)",
			runID, i+1, sub.Team, sub.Problem, string(sub.Status), sub.Minute)
		if err != nil {
			return fmt.Errorf("insert submission %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func GetRun(runID string) (*Run, error) {
	conn, err := handle()
	if err != nil {
		return nil, err
	}
	run := &Run{}
	err = conn.QueryRow("SELECT id, duration, frozen, finished_at FROM runs WHERE id = ?", runID).
		Scan(&run.ID, &run.Duration, &run.Frozen, &run.FinishedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func GetRunStandings(runID string) ([]contest.Standing, error) {
	conn, err := handle()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query("SELECT team, rank, solved, penalty FROM standings WHERE run_id = ? ORDER BY rank ASC", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []contest.Standing
	for rows.Next() {
		var s contest.Standing
		if err := rows.Scan(&s.Team, &s.Rank, &s.Solved, &s.Penalty); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

// GetRunSubmissions returns the archived submission log in arrival order.
func GetRunSubmissions(runID string) ([]contest.Submission, error) {
	conn, err := handle()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query("SELECT team, problem, status, minute FROM submissions WHERE run_id = ? ORDER BY seq ASC", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []contest.Submission
	for rows.Next() {
		var sub contest.Submission
		var status string
		if err := rows.Scan(&sub.Team, &sub.Problem, &status, &sub.Minute); err != nil {
			return nil, err
		}
		sub.Status = contest.Status(status)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
