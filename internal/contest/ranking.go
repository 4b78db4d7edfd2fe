package contest

import (
	"cmp"
	"slices"
)

// Standing is one row of a ranked scoreboard.
type Standing struct {
	Team    string
	Rank    int
	Solved  int
	Penalty int
}

// Compare orders teams best first: more problems solved, then lower penalty,
// then the earlier latest solve (solve times compared pairwise from the most
// recent), then name. It returns zero only when a and b share a name.
func Compare(a, b *Team) int {
	if a.solved != b.solved {
		return cmp.Compare(b.solved, a.solved)
	}
	if a.penalty != b.penalty {
		return cmp.Compare(a.penalty, b.penalty)
	}
	// Equal solved counts mean equal lengths.
	for i := range min(len(a.solveTimes), len(b.solveTimes)) {
		if a.solveTimes[i] != b.solveTimes[i] {
			return cmp.Compare(a.solveTimes[i], b.solveTimes[i])
		}
	}
	return cmp.Compare(a.name, b.name)
}

// Rank sorts teams with Compare and returns their names, best first.
// The input slice is left untouched.
func Rank(teams []*Team) []string {
	sorted := slices.Clone(teams)
	slices.SortFunc(sorted, Compare)

	names := make([]string, len(sorted))
	for i, t := range sorted {
		names[i] = t.name
	}
	return names
}
