package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/moving-battleship/internal/error"
)

// Placement attempts per ship before giving up on a fleet.
const maxPlacementAttempts = 100

type FleetConfig struct {
	ShipCount  int
	ShipLength int
}

// NewFleet places `count` ships of the given length on random,
// non-overlapping positions with random sailing directions.
// A ship must be strictly shorter than the board so that it
// can always bounce back in.
func NewFleet(count, length, boardSize int, rng *rand.Rand) ([]*Ship, error) {
	if boardSize < 2 || length < 1 || length >= boardSize {
		return nil, cerr.ErrShipDoesNotFit(length, boardSize)
	}
	if count < 1 {
		return nil, cerr.ErrFleetDoesNotFit(count, length, boardSize)
	}

	ships := make([]*Ship, 0, count)
	occupied := make(map[Coordinates]struct{}, count*length)

	for len(ships) < count {
		ship, ok := placeShip(length, boardSize, occupied, rng)
		if !ok {
			return nil, cerr.ErrFleetDoesNotFit(count, length, boardSize)
		}

		for _, c := range ship.Coordinates() {
			occupied[c] = struct{}{}
		}
		ships = append(ships, ship)
	}

	return ships, nil
}

func placeShip(length, boardSize int, occupied map[Coordinates]struct{}, rng *rand.Rand) (*Ship, bool) {
placementLoop:
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		direction := AllDirections[rng.IntN(len(AllDirections))]

		var head Coordinates
		if direction.IsVertical() {
			head = NewCoordinates(rng.IntN(boardSize), rng.IntN(boardSize-length+1))
		} else {
			head = NewCoordinates(rng.IntN(boardSize-length+1), rng.IntN(boardSize))
		}

		ship := NewShip(head, length, direction, boardSize)
		for _, c := range ship.Coordinates() {
			if _, prs := occupied[c]; prs {
				continue placementLoop
			}
		}
		return ship, true
	}

	return nil, false
}
