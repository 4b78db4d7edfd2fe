package contest

import (
	"fmt"
	"slices"
)

// Team holds the aggregate scoring state of one registered team.
// Solved always equals the number of first-accepted problems and the length
// of the solve time list.
type Team struct {
	name    string
	solved  int
	penalty int

	wrong         map[string]int
	firstAccepted map[string]int
	solveTimes    []int // descending
	history       []Submission
}

func newTeam(name string) *Team {
	return &Team{
		name:          name,
		wrong:         make(map[string]int),
		firstAccepted: make(map[string]int),
	}
}

func (t *Team) Name() string { return t.name }
func (t *Team) Solved() int  { return t.solved }
func (t *Team) Penalty() int { return t.penalty }

// WrongAttempts returns every non-accepted submission seen for problem,
// including those made after it was solved.
func (t *Team) WrongAttempts(problem string) int {
	return t.wrong[problem]
}

// FirstAccepted returns the minute of the first accepted submission for
// problem.
func (t *Team) FirstAccepted(problem string) (int, bool) {
	minute, ok := t.firstAccepted[problem]
	return minute, ok
}

// SolveTimes returns the first-acceptance minutes, latest first.
func (t *Team) SolveTimes() []int {
	return slices.Clone(t.solveTimes)
}

func (t *Team) History() []Submission {
	return slices.Clone(t.history)
}

// LastSubmission scans the history newest first and returns the first
// submission matching both filters. Any matches every problem or status.
func (t *Team) LastSubmission(problem, status string) (Submission, bool) {
	for i := len(t.history) - 1; i >= 0; i-- {
		if t.history[i].matches(problem, status) {
			return t.history[i], true
		}
	}
	return Submission{}, false
}

// registry maps team names to their state and remembers arrival order.
type registry struct {
	teams map[string]*Team
	order []string
}

func newRegistry() registry {
	return registry{teams: make(map[string]*Team)}
}

func (r *registry) register(name string) (*Team, error) {
	if _, ok := r.teams[name]; ok {
		return nil, fmt.Errorf("add team %q: %w", name, ErrDuplicateTeam)
	}
	team := newTeam(name)
	r.teams[name] = team
	r.order = append(r.order, name)
	return team, nil
}

func (r *registry) lookup(name string) (*Team, error) {
	team, ok := r.teams[name]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", name, ErrUnknownTeam)
	}
	return team, nil
}

// all returns the teams in registration order.
func (r *registry) all() []*Team {
	teams := make([]*Team, 0, len(r.order))
	for _, name := range r.order {
		teams = append(teams, r.teams[name])
	}
	return teams
}
