package battleship

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFleet(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	ships, err := NewFleet(4, 2, 5, rng)
	require.NoError(t, err)
	require.Len(t, ships, 4)

	occupied := make(map[Coordinates]struct{})
	for _, ship := range ships {
		assert.Equal(t, 2, ship.Length())
		assert.NotEqual(t, DirectionNotMoving, ship.Direction())
		for _, c := range ship.Coordinates() {
			assert.True(t, c.InBounds(5), "%s off the board", c)
			_, taken := occupied[c]
			assert.False(t, taken, "%s placed twice", c)
			occupied[c] = struct{}{}
		}
	}
}

func TestNewFleetRejectsImpossibleFleets(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name      string
		count     int
		length    int
		boardSize int
	}{
		{"ship as long as the board", 1, 5, 5},
		{"zero length", 1, 0, 5},
		{"board too small", 1, 1, 1},
		{"fleet larger than board", 20, 4, 5},
		{"no ships", 0, 2, 5},
		{"negative count", -1, 2, 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewFleet(test.count, test.length, test.boardSize, rng)
			assert.Error(t, err)
		})
	}
}
