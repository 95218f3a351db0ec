package battleship

import "fmt"

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// InBounds reports whether the coordinates fall on a
// square board of the given size.
func (c Coordinates) InBounds(boardSize int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < boardSize && c.Y < boardSize
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// offset returns the cell `i` steps away along the axis.
func (c Coordinates) offset(axis Axis, i int) Coordinates {
	if axis == AxisVertical {
		return Coordinates{X: c.X, Y: c.Y + i}
	}
	return Coordinates{X: c.X + i, Y: c.Y}
}
