package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCommand = errors.New("invalid command")

type Kind int

const (
	Start Kind = iota + 1
	AddTeam
	Submit
	Flush
	Freeze
	Scroll
	QueryRanking
	QuerySubmission
	End
)

var names = [...]string{
	Start:           "start",
	AddTeam:         "add_team",
	Submit:          "submit",
	Flush:           "flush",
	Freeze:          "freeze",
	Scroll:          "scroll",
	QueryRanking:    "query_ranking",
	QuerySubmission: "query_submission",
	End:             "end",
}

func (k Kind) String() string {
	if k < Start || k > End {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

func lookupKind(word string) (Kind, bool) {
	word = strings.ToLower(word)
	for k := Start; k <= End; k++ {
		if names[k] == word {
			return k, true
		}
	}
	return 0, false
}

// Command is one tokenized input line. Minute carries the duration for
// Start and the submission minute for Submit.
type Command struct {
	Kind    Kind
	Team    string
	Problem string
	Status  string
	Minute  int
}

// Parse tokenizes a command line. Keywords are case-insensitive, team,
// problem and status tokens are taken verbatim.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrInvalidCommand)
	}
	kind, ok := lookupKind(fields[0])
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, fields[0])
	}
	cmd := Command{Kind: kind}
	args := fields[1:]

	var err error
	switch kind {
	case Start:
		// START DURATION <n> or START <n>
		if len(args) == 2 && strings.EqualFold(args[0], "DURATION") {
			args = args[1:]
		}
		if len(args) != 1 {
			return cmd, arity(kind, len(fields))
		}
		cmd.Minute, err = minute(args[0])
	case AddTeam, QueryRanking:
		if len(args) != 1 {
			return cmd, arity(kind, len(fields))
		}
		cmd.Team = args[0]
	case Submit:
		// SUBMIT <team> <problem> <status> [AT] <minute>
		if len(args) == 5 && strings.EqualFold(args[3], "AT") {
			args = append(args[:3], args[4])
		}
		if len(args) != 4 {
			return cmd, arity(kind, len(fields))
		}
		cmd.Team, cmd.Problem, cmd.Status = args[0], args[1], args[2]
		cmd.Minute, err = minute(args[3])
	case QuerySubmission:
		err = parseQuery(&cmd, args)
	case Flush, Freeze, Scroll, End:
		if len(args) != 0 {
			return cmd, arity(kind, len(fields))
		}
	}
	return cmd, err
}

// parseQuery reads "<team> [WHERE] PROBLEM=<p> [AND] STATUS=<s>".
func parseQuery(cmd *Command, args []string) error {
	if len(args) == 0 {
		return arity(cmd.Kind, 1)
	}
	cmd.Team = args[0]
	var haveProblem, haveStatus bool
	for _, tok := range args[1:] {
		if strings.EqualFold(tok, "WHERE") || strings.EqualFold(tok, "AND") {
			continue
		}
		key, value, ok := strings.Cut(tok, "=")
		if !ok || value == "" {
			return fmt.Errorf("%w: bad filter %q", ErrInvalidCommand, tok)
		}
		switch strings.ToUpper(key) {
		case "PROBLEM":
			cmd.Problem, haveProblem = value, true
		case "STATUS":
			cmd.Status, haveStatus = value, true
		default:
			return fmt.Errorf("%w: unknown filter %q", ErrInvalidCommand, key)
		}
	}
	if !haveProblem || !haveStatus {
		return fmt.Errorf("%w: %s needs problem= and status= filters", ErrInvalidCommand, cmd.Kind)
	}
	return nil
}

func minute(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCommand, tok)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative time %d", ErrInvalidCommand, n)
	}
	return n, nil
}

func arity(kind Kind, got int) error {
	return fmt.Errorf("%w: wrong number of arguments for %s (%d tokens)", ErrInvalidCommand, kind, got)
}
