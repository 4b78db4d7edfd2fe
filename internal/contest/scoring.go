package contest

import (
	"cmp"
	"slices"
)

// PenaltyPerWrong is the penalty in minutes charged for every rejected
// attempt made before a problem's first acceptance.
const PenaltyPerWrong = 20

// apply records sub in the team's history and updates the aggregate score.
// Only the first accepted submission per problem scores.
func (t *Team) apply(sub Submission) {
	t.history = append(t.history, sub)

	if !sub.Status.Accepted() {
		t.wrong[sub.Problem]++
		return
	}
	if _, solved := t.firstAccepted[sub.Problem]; solved {
		return
	}

	t.firstAccepted[sub.Problem] = sub.Minute
	t.penalty += PenaltyPerWrong*t.wrong[sub.Problem] + sub.Minute
	t.solved++

	i, _ := slices.BinarySearchFunc(t.solveTimes, sub.Minute, func(e, target int) int {
		return cmp.Compare(target, e)
	})
	t.solveTimes = slices.Insert(t.solveTimes, i, sub.Minute)
}
