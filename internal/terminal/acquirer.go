package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/moving-battleship/internal/error"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
)

// StdinAcquirer asks a human for the next target, prompting again
// until the answer is a pair of coordinates on the board.
type StdinAcquirer struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ mb.TargetAcquirer = (*StdinAcquirer)(nil)

func NewStdinAcquirer(in io.Reader, out io.Writer) *StdinAcquirer {
	return &StdinAcquirer{in: bufio.NewScanner(in), out: out}
}

func (sa *StdinAcquirer) AcquireTarget(ctx context.Context, boardSize int) (mb.Coordinates, error) {
	for {
		if err := ctx.Err(); err != nil {
			return mb.Coordinates{}, err
		}

		fmt.Fprintf(sa.out, "Target (x,y) in [0, %d]: ", boardSize-1)
		if !sa.in.Scan() {
			if err := sa.in.Err(); err != nil {
				return mb.Coordinates{}, fmt.Errorf("failed to read target: %w", err)
			}
			return mb.Coordinates{}, io.EOF
		}

		target, err := ParseTarget(sa.in.Text(), boardSize)
		if err != nil {
			fmt.Fprintln(sa.out, err)
			continue
		}
		return target, nil
	}
}

// ParseTarget accepts "x,y", "x y" or "(x, y)".
func ParseTarget(input string, boardSize int) (mb.Coordinates, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '(' || r == ')'
	})
	if len(fields) != 2 {
		return mb.Coordinates{}, cerr.ErrInvalidTarget(strings.TrimSpace(input))
	}

	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if err := errors.Join(errX, errY); err != nil {
		return mb.Coordinates{}, cerr.ErrInvalidTarget(strings.TrimSpace(input))
	}

	target := mb.NewCoordinates(x, y)
	if !target.InBounds(boardSize) {
		return mb.Coordinates{}, cerr.ErrXorYOutOfGridBound(x, y)
	}
	return target, nil
}
