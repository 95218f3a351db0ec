package error

import "fmt"

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameNotCreated() error {
	return fmt.Errorf("no game has been created for this session")
}

func ErrGameIsOver(gameUuid string) error {
	return fmt.Errorf("game is already over, uuid: %s", gameUuid)
}

func ErrInvalidGameDifficulty() error {
	return fmt.Errorf("invalid game difficulty; must be 0 (easy), 1 (normal) or 2 (hard)")
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil, id: %s", sessionId)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrInvalidDirection(label string) error {
	return fmt.Errorf("invalid direction: %q", label)
}

func ErrShipDoesNotFit(length, boardSize int) error {
	return fmt.Errorf("ship of length %d does not fit a board of size %d", length, boardSize)
}

func ErrFleetDoesNotFit(count, length, boardSize int) error {
	return fmt.Errorf("could not place %d ships of length %d on a board of size %d", count, length, boardSize)
}

func ErrInvalidDump(err error) error {
	return fmt.Errorf("invalid game dump: %w", err)
}

func ErrInvalidTarget(input string) error {
	return fmt.Errorf("invalid target %q; expected two numbers such as 2,3", input)
}

func ErrSignalAbsent() error {
	return fmt.Errorf("incoming req payload must contain 'code' field")
}
