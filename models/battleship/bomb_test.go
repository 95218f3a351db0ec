package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBombLifetime(t *testing.T) {
	br := NewBombRegistry()
	pos := NewCoordinates(1, 1)
	br.Place(pos)

	for _, expected := range []int{3, 2, 1} {
		life, prs := br.Life(pos)
		require.True(t, prs)
		require.Equal(t, expected, life)
		br.Tick()
	}

	_, prs := br.Life(pos)
	assert.False(t, prs, "bomb must be gone after its third tick")
	assert.Equal(t, 0, br.Len())
}

func TestBombPlaceResetsLife(t *testing.T) {
	br := NewBombRegistry()
	br.Place(NewCoordinates(0, 0))
	br.Place(NewCoordinates(1, 0))
	br.Tick()
	br.Tick()

	br.Place(NewCoordinates(0, 0))

	assert.Equal(t, []Bomb{
		{Position: NewCoordinates(0, 0), Life: 3},
		{Position: NewCoordinates(1, 0), Life: 1},
	}, br.Bombs(), "re-placed bomb keeps its slot")
}

func TestBombResolveHits(t *testing.T) {
	t.Run("hit consumes the bomb", func(t *testing.T) {
		br := NewBombRegistry()
		ship := NewShip(NewCoordinates(0, 0), 2, DirectionRight, 5)
		br.Place(NewCoordinates(1, 0))
		br.Place(NewCoordinates(3, 3))

		hits := br.ResolveHits([]*Ship{ship})

		assert.Equal(t, []Coordinates{{1, 0}}, hits)
		assert.Equal(t, []Bomb{{Position: NewCoordinates(3, 3), Life: 3}}, br.Bombs())
	})

	t.Run("bomb on an already damaged cell stays", func(t *testing.T) {
		br := NewBombRegistry()
		ship := NewShip(NewCoordinates(0, 0), 2, DirectionRight, 5)
		ship.Hit(NewCoordinates(0, 0))
		br.Place(NewCoordinates(0, 0))

		hits := br.ResolveHits([]*Ship{ship})

		assert.Empty(t, hits)
		assert.Equal(t, 1, br.Len())
	})

	t.Run("one bomb damages one ship at most", func(t *testing.T) {
		br := NewBombRegistry()
		first := NewShip(NewCoordinates(0, 0), 2, DirectionRight, 5)
		second := NewShip(NewCoordinates(1, 0), 2, DirectionDown, 5)
		br.Place(NewCoordinates(1, 0))

		hits := br.ResolveHits([]*Ship{first, second})

		assert.Equal(t, []Coordinates{{1, 0}}, hits)
		assert.Equal(t, CellHit, first.CellStatus(NewCoordinates(1, 0)))
		assert.Equal(t, CellNotHit, second.CellStatus(NewCoordinates(1, 0)))
		assert.Equal(t, DirectionDown, second.Direction())
	})

	t.Run("several bombs on one ship", func(t *testing.T) {
		br := NewBombRegistry()
		ship := NewShip(NewCoordinates(0, 0), 3, DirectionDown, 5)
		br.Place(NewCoordinates(0, 2))
		br.Place(NewCoordinates(0, 0))

		hits := br.ResolveHits([]*Ship{ship})

		assert.Equal(t, []Coordinates{{0, 2}, {0, 0}}, hits)
		assert.Equal(t, 0, br.Len())
	})
}

func TestBombQueries(t *testing.T) {
	br := NewBombRegistry()
	br.Place(NewCoordinates(2, 2))
	br.Place(NewCoordinates(0, 4))
	br.Tick()
	br.Place(NewCoordinates(1, 1))

	assert.Equal(t, []Coordinates{{2, 2}, {0, 4}, {1, 1}}, br.Positions())

	var visited []Bomb
	br.Each(func(pos Coordinates, life int) bool {
		visited = append(visited, Bomb{Position: pos, Life: life})
		return len(visited) < 2
	})
	assert.Equal(t, []Bomb{{Position: NewCoordinates(2, 2), Life: 2}, {Position: NewCoordinates(0, 4), Life: 2}}, visited)
}

func TestBombDump(t *testing.T) {
	br := NewBombRegistry()
	assert.Equal(t, "{}", br.Dump())

	br.Place(NewCoordinates(0, 1))
	br.Place(NewCoordinates(3, 2))
	br.Tick()
	br.Place(NewCoordinates(4, 4))

	assert.Equal(t, "{(0, 1): 2, (3, 2): 2, (4, 4): 3}", br.Dump())
}
