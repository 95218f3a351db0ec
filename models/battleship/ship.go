package battleship

import (
	"fmt"
	"strings"
)

type CellStatus uint8

const (
	CellNotPartOfShip CellStatus = iota
	CellNotHit
	CellHit
)

// A ship is laid on a single axis which is fixed when it is
// created. It sails back and forth on that axis and bounces off
// the edges of the board. Once any of its cells is hit it stops
// for good, and once all of them are hit it is terminated.
type Ship struct {
	head      Coordinates
	length    int
	axis      Axis
	direction Direction
	boardSize int

	// cells[i] is the damage flag of the i-th cell counted
	// from the head along the axis.
	cells []bool
}

func NewShip(head Coordinates, length int, direction Direction, boardSize int) *Ship {
	return newShipOnAxis(head, length, direction.Axis(), direction, boardSize)
}

func newShipOnAxis(head Coordinates, length int, axis Axis, direction Direction, boardSize int) *Ship {
	return &Ship{
		head:      head,
		length:    length,
		axis:      axis,
		direction: direction,
		boardSize: boardSize,
		cells:     make([]bool, length),
	}
}

// Move sails the ship one board unit and returns the direction
// it is sailing in afterwards.
func (sh *Ship) Move() Direction {
	sh.head, sh.direction = step(sh.head, sh.direction, sh.length, sh.boardSize)
	return sh.direction
}

// step is the single movement transition. If going on would push
// the ship off the board, the direction flips and the ship moves one
// unit the other way within the same step.
func step(head Coordinates, dir Direction, length, boardSize int) (Coordinates, Direction) {
	switch dir {
	case DirectionUp:
		if head.Y == 0 {
			return Coordinates{X: head.X, Y: head.Y + 1}, DirectionDown
		}
		return Coordinates{X: head.X, Y: head.Y - 1}, DirectionUp

	case DirectionDown:
		if head.Y+length >= boardSize {
			return Coordinates{X: head.X, Y: head.Y - 1}, DirectionUp
		}
		return Coordinates{X: head.X, Y: head.Y + 1}, DirectionDown

	case DirectionLeft:
		if head.X == 0 {
			return Coordinates{X: head.X + 1, Y: head.Y}, DirectionRight
		}
		return Coordinates{X: head.X - 1, Y: head.Y}, DirectionLeft

	case DirectionRight:
		if head.X+length >= boardSize {
			return Coordinates{X: head.X - 1, Y: head.Y}, DirectionLeft
		}
		return Coordinates{X: head.X + 1, Y: head.Y}, DirectionRight
	}

	return head, dir
}

// Hit informs the ship that a bomb landed on pos. Returns true
// only if this produced new damage.
func (sh *Ship) Hit(pos Coordinates) bool {
	i := sh.cellIndex(pos)
	if i < 0 {
		return false
	}

	sh.direction = DirectionNotMoving
	if sh.cells[i] {
		return false
	}
	sh.cells[i] = true
	return true
}

func (sh *Ship) Terminated() bool {
	return sh.damagedCount() == sh.length
}

func (sh *Ship) damagedCount() int {
	count := 0
	for _, damaged := range sh.cells {
		if damaged {
			count++
		}
	}
	return count
}

func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, sh.length)
	for i := range coords {
		coords[i] = sh.head.offset(sh.axis, i)
	}
	return coords
}

func (sh *Ship) DamagedCells() []Coordinates {
	damaged := make([]Coordinates, 0, sh.length)
	for i, hit := range sh.cells {
		if hit {
			damaged = append(damaged, sh.head.offset(sh.axis, i))
		}
	}
	return damaged
}

func (sh *Ship) CellStatus(pos Coordinates) CellStatus {
	i := sh.cellIndex(pos)
	if i < 0 {
		return CellNotPartOfShip
	}
	if sh.cells[i] {
		return CellHit
	}
	return CellNotHit
}

func (sh *Ship) Contains(pos Coordinates) bool {
	return sh.cellIndex(pos) >= 0
}

// cellIndex returns the offset of pos from the head or -1 if pos
// is not one of the ship's cells.
func (sh *Ship) cellIndex(pos Coordinates) int {
	var along int
	switch sh.axis {
	case AxisVertical:
		if pos.X != sh.head.X {
			return -1
		}
		along = pos.Y - sh.head.Y

	default:
		if pos.Y != sh.head.Y {
			return -1
		}
		along = pos.X - sh.head.X
	}

	if along < 0 || along >= sh.length {
		return -1
	}
	return along
}

func (sh *Ship) Direction() Direction {
	return sh.direction
}

func (sh *Ship) Head() Coordinates {
	return sh.head
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Axis() Axis {
	return sh.axis
}

func (sh *Ship) BoardSize() int {
	return sh.boardSize
}

// Dump returns the canonical textual form of the ship:
// ([coordinates], [damaged coordinates], 'DIRECTION', board size)
func (sh *Ship) Dump() string {
	return fmt.Sprintf("(%s, %s, '%s', %d)",
		dumpCoordinatesList(sh.Coordinates()),
		dumpCoordinatesList(sh.DamagedCells()),
		sh.direction,
		sh.boardSize,
	)
}

func dumpCoordinatesList(coords []Coordinates) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
