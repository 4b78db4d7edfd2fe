package db

import (
	"icpcboard/internal/contest"
)

// ScorePoint is a team's cumulative score right after a scoring submission.
type ScorePoint struct {
	Minute  int
	Solved  int
	Penalty int
}

// GetTeamProgress returns the cumulative score series of a team in an
// archived run. Only the first accepted submission per problem adds a point,
// matching the live scoring rules.
func GetTeamProgress(runID, team string) ([]ScorePoint, error) {
	conn, err := handle()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(`
		SELECT problem, status, minute
		FROM submissions
		WHERE run_id = ? AND team = ?
		ORDER BY seq ASC
	`, runID, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wrong := make(map[string]int)
	seen := make(map[string]bool)
	var solved, penalty int
	var series []ScorePoint
	for rows.Next() {
		var problem, status string
		var minute int
		if err := rows.Scan(&problem, &status, &minute); err != nil {
			return nil, err
		}
		if seen[problem] {
			continue
		}
		if !contest.Status(status).Accepted() {
			wrong[problem]++
			continue
		}
		seen[problem] = true
		solved++
		penalty += contest.PenaltyPerWrong*wrong[problem] + minute
		series = append(series, ScorePoint{Minute: minute, Solved: solved, Penalty: penalty})
	}
	return series, rows.Err()
}
