package main

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/saeidalz13/moving-battleship/internal/config"
	"github.com/saeidalz13/moving-battleship/internal/logging"
	"github.com/saeidalz13/moving-battleship/internal/terminal"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
)

// Plays a single game on the terminal. The websocket server lives
// in cmd/.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>32))

	ships, err := mb.NewFleet(cfg.ShipCount, cfg.ShipLength, cfg.BoardSize, rng)
	if err != nil {
		logger.Fatal().Err(err).
			Int("board_size", cfg.BoardSize).
			Int("ship_count", cfg.ShipCount).
			Int("ship_length", cfg.ShipLength).
			Msg("failed to place the fleet")
	}

	game := mb.NewGame(cfg.BoardSize, ships, mb.WithReporter(terminal.NewReporter(os.Stdout)))
	logger.Debug().Str("game_uuid", game.Uuid()).Str("dump", game.Dump()).Msg("game created")

	err = game.Play(ctx, terminal.NewStdinAcquirer(os.Stdin, os.Stdout))
	switch {
	case err == nil:
		logger.Info().Str("game_uuid", game.Uuid()).Int("round", game.Round()).Msg("game over")
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		logger.Info().Str("game_uuid", game.Uuid()).Int("round", game.Round()).Msg("game abandoned")
	default:
		logger.Fatal().Err(err).Msg("game stopped")
	}
}
