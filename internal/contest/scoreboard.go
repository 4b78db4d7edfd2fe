package contest

import (
	"fmt"
	"slices"
)

// Mode is the visibility state of the scoreboard.
type Mode int

const (
	Live Mode = iota
	Frozen
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case Frozen:
		return "frozen"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Scoreboard is the last published rank order together with the freeze
// state. The order only changes on publish; team names are appended on
// registration so every team always has a position.
type Scoreboard struct {
	order []string
	index map[string]int
	mode  Mode
}

func newScoreboard() Scoreboard {
	return Scoreboard{index: make(map[string]int)}
}

func (b *Scoreboard) Mode() Mode {
	return b.mode
}

// Order returns the published order, best first.
func (b *Scoreboard) Order() []string {
	return slices.Clone(b.order)
}

func (b *Scoreboard) append(name string) {
	b.index[name] = len(b.order)
	b.order = append(b.order, name)
}

func (b *Scoreboard) publish(order []string) {
	b.order = order
	clear(b.index)
	for i, name := range order {
		b.index[name] = i
	}
}

// position returns the 1-based published rank of name.
func (b *Scoreboard) position(name string) (int, bool) {
	i, ok := b.index[name]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

func (b *Scoreboard) freeze() error {
	if b.mode == Frozen {
		return ErrAlreadyFrozen
	}
	b.mode = Frozen
	return nil
}

func (b *Scoreboard) unfreeze() error {
	if b.mode != Frozen {
		return ErrNotFrozen
	}
	b.mode = Live
	return nil
}
