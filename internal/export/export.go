package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"icpcboard/internal/contest"
)

// WriteStandings writes one "<team> <rank> <solved> <penalty>" line per team
// to <dir>/<runID>.txt and returns the file path.
func WriteStandings(dir, runID string, standings []contest.Standing) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, runID+".txt")
	tmp := path + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(out)
	for _, s := range standings {
		fmt.Fprintf(w, "%s %d %d %d\n", s.Team, s.Rank, s.Solved, s.Penalty)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	// Readers on the sftp side never see a partial file.
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}
