// Package console reads scoreboard commands line by line, applies them to a
// contest.Competition and renders the result lines.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"icpcboard/internal/contest"
)

var (
	ErrNotStarted     = errors.New("competition has not started")
	ErrAlreadyStarted = errors.New("competition has already started")
)

const frozenWarning = "[Warning]Scoreboard is frozen. The ranking may be inaccurate until it were scrolled."

// Console owns one competition for the lifetime of a single input stream.
type Console struct {
	out    io.Writer
	logger *log.Logger

	comp   *contest.Competition
	ended  bool
	lines  int
	outErr error
}

func New(out io.Writer, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{out: out, logger: logger}
}

// Competition returns the running competition, or nil before START.
func (c *Console) Competition() *contest.Competition {
	return c.comp
}

// Ended reports whether END has been processed.
func (c *Console) Ended() bool {
	return c.ended
}

// Run executes commands from r until END, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	for !c.ended {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.lines++

		switch {
		case errors.Is(err, errLineTooLong):
			c.logger.Warn("Rejected input line", "line", c.lines, "error", err)
			c.printf("[Error]Invalid command: %s.\n", err)
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		case strings.TrimSpace(line) == "":
			continue
		default:
			cmd, err := Parse(line)
			if err != nil {
				c.logger.Warn("Rejected input line", "line", c.lines, "error", err)
				detail := strings.TrimPrefix(err.Error(), ErrInvalidCommand.Error()+": ")
				c.printf("[Error]Invalid command: %s.\n", detail)
			} else {
				c.Exec(cmd)
			}
		}
		if c.outErr != nil {
			return fmt.Errorf("write output: %w", c.outErr)
		}
	}
	return c.outErr
}

// MaxLine bounds the length of one input line in bytes.
const MaxLine = 1 << 20

var errLineTooLong = errors.New("line too long")

// readLine returns the next line without its terminator. A line longer than
// MaxLine is consumed in full and reported as errLineTooLong.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	n := 0
	for {
		chunk, err := r.ReadSlice('\n')
		n += len(chunk)
		if n <= MaxLine {
			buf = append(buf, chunk...)
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && n > 0:
			// last line has no terminator
		case err != nil:
			return "", err
		}
		if n > MaxLine {
			return "", errLineTooLong
		}
		return strings.TrimRight(string(buf), "\r\n"), nil
	}
}

// Exec applies one command and writes its result lines. The returned error
// is the rejection reason already rendered to the output; it is never fatal.
func (c *Console) Exec(cmd Command) error {
	c.logger.Debug("Command", "op", cmd.Kind, "team", cmd.Team)
	err := c.exec(cmd)
	if err != nil {
		c.logger.Warn("Command failed", "op", cmd.Kind, "team", cmd.Team, "error", err)
		c.printf("[Error]%s failed: %s.\n", opName(cmd.Kind), reason(err))
	}
	return err
}

func (c *Console) exec(cmd Command) error {
	switch cmd.Kind {
	case Start:
		if c.comp != nil {
			return ErrAlreadyStarted
		}
		c.comp = contest.New(cmd.Minute)
		c.printf("[Info]Competition starts.\n")
		return nil
	case End:
		c.ended = true
		c.printf("[Info]Competition ends.\n")
		return nil
	}

	if c.comp == nil {
		return ErrNotStarted
	}

	switch cmd.Kind {
	case AddTeam:
		if err := c.comp.AddTeam(cmd.Team); err != nil {
			return err
		}
		c.printf("[Info]Add successfully.\n")
	case Submit:
		sub := contest.Submission{
			Team:    cmd.Team,
			Problem: cmd.Problem,
			Status:  contest.Status(cmd.Status),
			Minute:  cmd.Minute,
		}
		if err := c.comp.Submit(sub); err != nil {
			return err
		}
		c.printf("[Info]Submit successfully.\n")
	case Flush:
		c.comp.Flush()
		c.printf("[Info]Flush scoreboard.\n")
	case Freeze:
		if err := c.comp.Freeze(); err != nil {
			return err
		}
		c.printf("[Info]Freeze scoreboard.\n")
	case Scroll:
		standings, err := c.comp.Scroll()
		if err != nil {
			return err
		}
		c.printf("[Info]Scroll scoreboard.\n")
		for _, s := range standings {
			c.printf("%s %d %d %d\n", s.Team, s.Rank, s.Solved, s.Penalty)
		}
	case QueryRanking:
		p, err := c.comp.QueryRanking(cmd.Team)
		if err != nil {
			return err
		}
		if p.Frozen {
			c.printf("%s\n", frozenWarning)
		}
		c.printf("[%s] NOW AT RANKING %d\n", p.Team, p.Rank)
	case QuerySubmission:
		sub, found, err := c.comp.QuerySubmission(cmd.Team, cmd.Problem, cmd.Status)
		if err != nil {
			return err
		}
		c.printf("[Info]Complete query submission.\n")
		if !found {
			c.printf("Cannot find any submission.\n")
			return nil
		}
		c.printf("%s %s %s %d\n", sub.Team, sub.Problem, sub.Status, sub.Minute)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCommand, cmd.Kind)
	}
	return nil
}

func (c *Console) printf(format string, args ...any) {
	if c.outErr != nil {
		return
	}
	_, c.outErr = fmt.Fprintf(c.out, format, args...)
}

func opName(k Kind) string {
	switch k {
	case Start:
		return "Start"
	case AddTeam:
		return "Add"
	case Submit:
		return "Submit"
	case Flush:
		return "Flush"
	case Freeze:
		return "Freeze"
	case Scroll:
		return "Scroll"
	case QueryRanking:
		return "Query ranking"
	case QuerySubmission:
		return "Query submission"
	}
	return "Command"
}

var reasons = []error{
	contest.ErrDuplicateTeam,
	contest.ErrUnknownTeam,
	contest.ErrAlreadyFrozen,
	contest.ErrNotFrozen,
	ErrNotStarted,
	ErrAlreadyStarted,
}

// reason strips wrapping context so the rendered line names only the
// violated precondition.
func reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r) {
			return r.Error()
		}
	}
	return err.Error()
}
