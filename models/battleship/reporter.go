package battleship

import "context"

// TargetAcquirer supplies the coordinates of the next bomb. It
// blocks until a target is available and is responsible for
// only handing out coordinates that lie on the board.
type TargetAcquirer interface {
	AcquireTarget(ctx context.Context, boardSize int) (Coordinates, error)
}

// Reporter receives the presentational output of a game.
// Nothing it does feeds back into the simulation.
type Reporter interface {
	ReportLegend()
	ReportBoard(board BoardView)
	ReportTurn(hits, terminations int)
	ReportGameOver()
}

type NopReporter struct{}

var _ Reporter = NopReporter{}

func (NopReporter) ReportLegend()         {}
func (NopReporter) ReportBoard(BoardView) {}
func (NopReporter) ReportTurn(int, int)   {}
func (NopReporter) ReportGameOver()       {}
