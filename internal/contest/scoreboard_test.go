package contest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboard_transitions(t *testing.T) {
	tests := []struct {
		name    string
		start   Mode
		op      func(b *Scoreboard) error
		wantErr error
		want    Mode
	}{
		{name: "freeze live", start: Live, op: (*Scoreboard).freeze, want: Frozen},
		{name: "freeze frozen", start: Frozen, op: (*Scoreboard).freeze, wantErr: ErrAlreadyFrozen, want: Frozen},
		{name: "unfreeze frozen", start: Frozen, op: (*Scoreboard).unfreeze, want: Live},
		{name: "unfreeze live", start: Live, op: (*Scoreboard).unfreeze, wantErr: ErrNotFrozen, want: Live},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newScoreboard()
			b.mode = tt.start
			err := tt.op(&b)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, b.Mode())
		})
	}
}

func TestScoreboard_position(t *testing.T) {
	b := newScoreboard()
	b.append("a")
	b.append("b")

	rank, ok := b.position("b")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	b.publish([]string{"b", "a"})
	rank, ok = b.position("b")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	_, ok = b.position("c")
	assert.False(t, ok)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "live", Live.String())
	assert.Equal(t, "frozen", Frozen.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
