package battleship

import (
	"fmt"
	"strings"
)

// Number of rounds a bomb stays on the board, counting the
// round it was placed in.
const BombLifetime = 3

type Bomb struct {
	Position Coordinates `json:"position"`
	Life     int         `json:"life"`
}

// BombRegistry maps board coordinates to the remaining life of the
// bomb placed there. Iteration follows placement order; placing a
// bomb on an occupied coordinate resets its life but keeps its slot.
type BombRegistry struct {
	order []Coordinates
	lives map[Coordinates]int
}

func NewBombRegistry() *BombRegistry {
	return &BombRegistry{
		order: make([]Coordinates, 0, BombLifetime),
		lives: make(map[Coordinates]int, BombLifetime),
	}
}

func (br *BombRegistry) Place(pos Coordinates) {
	br.set(pos, BombLifetime)
}

func (br *BombRegistry) set(pos Coordinates, life int) {
	if _, prs := br.lives[pos]; !prs {
		br.order = append(br.order, pos)
	}
	br.lives[pos] = life
}

// Tick ages every bomb by one round and purges the expired ones.
func (br *BombRegistry) Tick() {
	expired := make([]Coordinates, 0, len(br.order))

	for _, pos := range br.order {
		if br.lives[pos] >= 1 {
			br.lives[pos]--
		}
		if br.lives[pos] < 1 {
			expired = append(expired, pos)
		}
	}

	br.remove(expired...)
}

// ResolveHits tries every live bomb against the ships in order.
// A bomb that damages a ship is consumed and does not get to
// damage another one. Returns the positions that scored.
func (br *BombRegistry) ResolveHits(ships []*Ship) []Coordinates {
	hits := make([]Coordinates, 0, len(br.order))

	for _, pos := range br.order {
		for _, ship := range ships {
			if ship.Hit(pos) {
				hits = append(hits, pos)
				break
			}
		}
	}

	br.remove(hits...)
	return hits
}

func (br *BombRegistry) remove(positions ...Coordinates) {
	if len(positions) == 0 {
		return
	}

	for _, pos := range positions {
		delete(br.lives, pos)
	}

	kept := br.order[:0]
	for _, pos := range br.order {
		if _, prs := br.lives[pos]; prs {
			kept = append(kept, pos)
		}
	}
	br.order = kept
}

func (br *BombRegistry) Life(pos Coordinates) (int, bool) {
	life, prs := br.lives[pos]
	return life, prs
}

func (br *BombRegistry) Len() int {
	return len(br.order)
}

// Bombs returns a copy of the live bombs in placement order.
func (br *BombRegistry) Bombs() []Bomb {
	bombs := make([]Bomb, len(br.order))
	for i, pos := range br.order {
		bombs[i] = Bomb{Position: pos, Life: br.lives[pos]}
	}
	return bombs
}

func (br *BombRegistry) Positions() []Coordinates {
	positions := make([]Coordinates, len(br.order))
	copy(positions, br.order)
	return positions
}

// Each calls fn for every live bomb in placement order and stops
// early when fn returns false. fn must not modify the registry.
func (br *BombRegistry) Each(fn func(pos Coordinates, life int) bool) {
	for _, pos := range br.order {
		if !fn(pos, br.lives[pos]) {
			return
		}
	}
}

// Dump formats the registry as {(x, y): life, ...}
func (br *BombRegistry) Dump() string {
	parts := make([]string, 0, len(br.order))
	br.Each(func(pos Coordinates, life int) bool {
		parts = append(parts, fmt.Sprintf("%s: %d", pos, life))
		return true
	})
	return "{" + strings.Join(parts, ", ") + "}"
}
