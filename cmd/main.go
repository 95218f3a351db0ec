package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/moving-battleship/api"
	"github.com/saeidalz13/moving-battleship/db"
	"github.com/saeidalz13/moving-battleship/db/sqlc"
	"github.com/saeidalz13/moving-battleship/internal/config"
	"github.com/saeidalz13/moving-battleship/internal/logging"
	"github.com/saeidalz13/moving-battleship/internal/storage"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	mc "github.com/saeidalz13/moving-battleship/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var querier sqlc.Querier
	if cfg.DatabaseURL != "" {
		conn := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir, logger)
		defer conn.Close()
		querier = sqlc.New(conn)
	} else {
		logger.Warn().Msg("DATABASE_URL is empty, analytics are disabled")
	}

	snapshots, err := storage.Open(cfg.SnapshotDB, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open snapshot store")
	}
	defer snapshots.Close()

	seed := uint64(time.Now().UnixNano())
	bgm := mb.NewBattleshipGameManager(
		mb.FleetConfig{ShipCount: cfg.ShipCount, ShipLength: cfg.ShipLength},
		rand.New(rand.NewPCG(seed, seed>>32)),
	)
	bsm := mc.NewBattleshipSessionManager(logger)
	go bsm.CleanupPeriodically(ctx)

	rp := api.NewRequestProcessor(bsm, bgm, querier, snapshots, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	logger.Info().Int("port", cfg.Port).Str("stage", cfg.Stage).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server stopped")
	}
}
