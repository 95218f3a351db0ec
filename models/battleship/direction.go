package battleship

import (
	"fmt"
	"strings"

	cerr "github.com/saeidalz13/moving-battleship/internal/error"
)

type Direction uint8

const (
	DirectionNotMoving Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Every direction a ship can start sailing in.
var AllDirections = [4]Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

var directionLabels = map[Direction]string{
	DirectionNotMoving: "NOT_MOVING",
	DirectionUp:        "UP",
	DirectionDown:      "DOWN",
	DirectionLeft:      "LEFT",
	DirectionRight:     "RIGHT",
}

func ParseDirection(label string) (Direction, error) {
	for d, l := range directionLabels {
		if strings.EqualFold(l, label) {
			return d, nil
		}
	}
	return DirectionNotMoving, cerr.ErrInvalidDirection(label)
}

func (d Direction) IsVertical() bool {
	return d == DirectionUp || d == DirectionDown
}

func (d Direction) IsHorizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Axis of a moving direction. NotMoving has no axis of its
// own and falls back to horizontal.
func (d Direction) Axis() Axis {
	if d.IsVertical() {
		return AxisVertical
	}
	return AxisHorizontal
}

func (d Direction) String() string {
	if l, ok := directionLabels[d]; ok {
		return l
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (a Axis) String() string {
	if a == AxisVertical {
		return "VERTICAL"
	}
	return "HORIZONTAL"
}
