package contest

import "errors"

var (
	ErrDuplicateTeam = errors.New("duplicated team name")
	ErrUnknownTeam   = errors.New("cannot find the team")
	ErrAlreadyFrozen = errors.New("scoreboard has been frozen")
	ErrNotFrozen     = errors.New("scoreboard has not been frozen")
)
