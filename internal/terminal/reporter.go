package terminal

import (
	"fmt"
	"io"

	mb "github.com/saeidalz13/moving-battleship/models/battleship"
)

// Reporter prints the game to a terminal.
type Reporter struct {
	out io.Writer
}

var _ mb.Reporter = (*Reporter)(nil)

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) ReportLegend() {
	fmt.Fprintln(r.out, mb.Legend())
}

func (r *Reporter) ReportBoard(board mb.BoardView) {
	fmt.Fprintln(r.out, mb.RenderBoard(board))
}

func (r *Reporter) ReportTurn(hits, terminations int) {
	switch {
	case hits == 0:
		fmt.Fprintln(r.out, "No hits this round.")
	case terminations == 0:
		fmt.Fprintf(r.out, "Hits: %d\n", hits)
	default:
		fmt.Fprintf(r.out, "Hits: %d, ships terminated: %d\n", hits, terminations)
	}
}

func (r *Reporter) ReportGameOver() {
	fmt.Fprintln(r.out, "All ships terminated. Game over!")
}
