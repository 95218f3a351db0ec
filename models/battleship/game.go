package battleship

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const (
	GridSizeEasy   int = 5
	GridSizeNormal int = 6
	GridSizeHard   int = 7
)

// A game is a square board with moving ships and timed bombs.
// It is driven one round at a time and is not safe for
// concurrent use; the owner of the game serializes calls.
type Game struct {
	uuid       string
	difficulty uint8
	boardSize  int
	round      int

	ships []*Ship
	bombs *BombRegistry

	// Every coordinate a bomb has damaged so far, in the
	// order they were first hit.
	hitHistory []Coordinates
	hitSet     map[Coordinates]struct{}

	reporter Reporter
}

type RoundResult struct {
	Round          int           `json:"round"`
	Target         Coordinates   `json:"target"`
	Hits           []Coordinates `json:"hits"`
	Terminations   int           `json:"terminations"`
	ShipsRemaining int           `json:"ships_remaining"`
	Board          BoardView     `json:"board"`
}

type GameOption func(*Game)

func WithReporter(r Reporter) GameOption {
	return func(g *Game) {
		g.reporter = r
	}
}

func WithUuid(gameUuid string) GameOption {
	return func(g *Game) {
		g.uuid = gameUuid
	}
}

func WithDifficulty(difficulty uint8) GameOption {
	return func(g *Game) {
		g.difficulty = difficulty
	}
}

// WithRound sets the number of rounds already played, used
// when a game is restored from a snapshot.
func WithRound(round int) GameOption {
	return func(g *Game) {
		g.round = round
	}
}

func NewGame(boardSize int, ships []*Ship, opts ...GameOption) *Game {
	game := &Game{
		uuid:       uuid.NewString()[:6],
		difficulty: GameDifficultyEasy,
		boardSize:  boardSize,
		ships:      ships,
		bombs:      NewBombRegistry(),
		hitHistory: make([]Coordinates, 0, len(ships)),
		hitSet:     make(map[Coordinates]struct{}, len(ships)),
		reporter:   NopReporter{},
	}

	for _, opt := range opts {
		opt(game)
	}
	return game
}

// PlayRound runs a full round with the given target as the new
// bomb. The order of the steps is part of the game rules: bombs age
// before the new one is placed, ships move before bombs are resolved,
// and terminated ships are removed last.
func (g *Game) PlayRound(target Coordinates) RoundResult {
	g.round++

	g.bombs.Tick()
	g.bombs.Place(target)
	g.moveShips()

	hits := g.bombs.ResolveHits(g.ships)
	g.recordHits(hits)

	board := g.boardView(hits, g.undamagedCoordinates())
	g.reporter.ReportBoard(board)

	terminations := g.removeTerminatedShips()
	g.reporter.ReportTurn(len(hits), terminations)

	return RoundResult{
		Round:          g.round,
		Target:         target,
		Hits:           hits,
		Terminations:   terminations,
		ShipsRemaining: len(g.ships),
		Board:          board,
	}
}

// Play drives the game until every ship is terminated, asking the
// acquirer for a target every round.
func (g *Game) Play(ctx context.Context, acquirer TargetAcquirer) error {
	g.reporter.ReportLegend()
	g.reporter.ReportBoard(g.Board())

	for !g.IsOver() {
		target, err := acquirer.AcquireTarget(ctx, g.boardSize)
		if err != nil {
			return fmt.Errorf("failed to acquire target for round %d: %w", g.round+1, err)
		}
		g.PlayRound(target)
	}

	g.reporter.ReportGameOver()
	return nil
}

func (g *Game) moveShips() {
	for _, ship := range g.ships {
		ship.Move()
	}
}

func (g *Game) recordHits(hits []Coordinates) {
	for _, pos := range hits {
		if _, prs := g.hitSet[pos]; prs {
			continue
		}
		g.hitSet[pos] = struct{}{}
		g.hitHistory = append(g.hitHistory, pos)
	}
}

// undamagedCoordinates lists the cells of the ships still on the
// board that were never hit.
func (g *Game) undamagedCoordinates() []Coordinates {
	seen := make(map[Coordinates]struct{})
	undamaged := make([]Coordinates, 0, len(g.ships))

	for _, ship := range g.ships {
		for _, c := range ship.Coordinates() {
			if _, prs := g.hitSet[c]; prs {
				continue
			}
			if _, prs := seen[c]; prs {
				continue
			}
			seen[c] = struct{}{}
			undamaged = append(undamaged, c)
		}
	}
	return undamaged
}

func (g *Game) removeTerminatedShips() int {
	survivors := g.ships[:0]
	for _, ship := range g.ships {
		if !ship.Terminated() {
			survivors = append(survivors, ship)
		}
	}

	terminations := len(g.ships) - len(survivors)
	for i := len(survivors); i < len(g.ships); i++ {
		g.ships[i] = nil
	}
	g.ships = survivors
	return terminations
}

func (g *Game) boardView(hits []Coordinates, undamaged []Coordinates) BoardView {
	history := make([]Coordinates, len(g.hitHistory))
	copy(history, g.hitHistory)

	return BoardView{
		BoardSize:  g.boardSize,
		Hits:       hits,
		Bombs:      g.bombs.Bombs(),
		HitHistory: history,
		Undamaged:  undamaged,
	}
}

// Board returns the current state of the board without any
// hits for the round.
func (g *Game) Board() BoardView {
	return g.boardView([]Coordinates{}, g.undamagedCoordinates())
}

func (g *Game) IsOver() bool {
	return len(g.ships) == 0
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Difficulty() uint8 {
	return g.difficulty
}

func (g *Game) BoardSize() int {
	return g.boardSize
}

func (g *Game) Round() int {
	return g.round
}

// Ships returns the live ships in their original order. The
// slice is a copy but the ships are not.
func (g *Game) Ships() []*Ship {
	ships := make([]*Ship, len(g.ships))
	copy(ships, g.ships)
	return ships
}

func (g *Game) Bombs() []Bomb {
	return g.bombs.Bombs()
}

func (g *Game) BombLife(pos Coordinates) (int, bool) {
	return g.bombs.Life(pos)
}

func (g *Game) HitHistory() []Coordinates {
	history := make([]Coordinates, len(g.hitHistory))
	copy(history, g.hitHistory)
	return history
}
