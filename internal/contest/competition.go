// Package contest implements an ICPC-style scoreboard: team registration,
// first-accepted-wins scoring, the ranking comparator and the freeze/scroll
// visibility cycle.
//
// A Competition is not safe for concurrent use. Commands are expected to be
// applied one at a time in arrival order by a single owner.
//
// Freezing the scoreboard hides nothing: submissions keep updating every
// team's true score while frozen. Freeze only gates scroll and marks rank
// queries as possibly stale until the next flush or scroll.
package contest

import (
	"fmt"
	"slices"
)

type Competition struct {
	duration int
	teams    registry
	board    Scoreboard
	log      []Submission
}

// Placement is the answer to a rank query.
type Placement struct {
	Team   string
	Rank   int
	Frozen bool
}

func New(duration int) *Competition {
	return &Competition{
		duration: duration,
		teams:    newRegistry(),
		board:    newScoreboard(),
	}
}

func (c *Competition) Duration() int { return c.duration }
func (c *Competition) Mode() Mode    { return c.board.Mode() }

// Order returns the published rank order.
func (c *Competition) Order() []string {
	return c.board.Order()
}

func (c *Competition) Team(name string) (*Team, error) {
	return c.teams.lookup(name)
}

func (c *Competition) AddTeam(name string) error {
	if _, err := c.teams.register(name); err != nil {
		return err
	}
	c.board.append(name)
	return nil
}

// Submit records sub for its team. Scores update regardless of the freeze
// state.
func (c *Competition) Submit(sub Submission) error {
	team, err := c.teams.lookup(sub.Team)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	c.log = append(c.log, sub)
	team.apply(sub)
	return nil
}

// Submissions returns the global submission log in arrival order.
func (c *Competition) Submissions() []Submission {
	return slices.Clone(c.log)
}

// Flush recomputes the ranking and publishes it without touching the freeze
// state.
func (c *Competition) Flush() {
	c.board.publish(Rank(c.teams.all()))
}

func (c *Competition) Freeze() error {
	if err := c.board.freeze(); err != nil {
		return fmt.Errorf("freeze: %w", err)
	}
	return nil
}

// Scroll unfreezes the scoreboard, publishes a fresh ranking and returns it.
func (c *Competition) Scroll() ([]Standing, error) {
	if err := c.board.unfreeze(); err != nil {
		return nil, fmt.Errorf("scroll: %w", err)
	}
	c.Flush()
	return c.standings(c.board.order), nil
}

// Standings ranks the current scores without publishing them.
func (c *Competition) Standings() []Standing {
	return c.standings(Rank(c.teams.all()))
}

func (c *Competition) standings(order []string) []Standing {
	out := make([]Standing, len(order))
	for i, name := range order {
		t := c.teams.teams[name]
		out[i] = Standing{Team: name, Rank: i + 1, Solved: t.solved, Penalty: t.penalty}
	}
	return out
}

// QueryRanking reports the team's position in the last published order.
func (c *Competition) QueryRanking(name string) (Placement, error) {
	if _, err := c.teams.lookup(name); err != nil {
		return Placement{}, fmt.Errorf("query ranking: %w", err)
	}
	rank, _ := c.board.position(name)
	return Placement{Team: name, Rank: rank, Frozen: c.board.mode == Frozen}, nil
}

// QuerySubmission returns the team's most recent submission matching the
// problem and status filters. found is false when nothing matches.
func (c *Competition) QuerySubmission(name, problem, status string) (sub Submission, found bool, err error) {
	team, err := c.teams.lookup(name)
	if err != nil {
		return Submission{}, false, fmt.Errorf("query submission: %w", err)
	}
	sub, found = team.LastSubmission(problem, status)
	return sub, found, nil
}
