package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the dump of a game taken at the end of a round.
type Snapshot struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	GameUuid       string    `gorm:"size:36;index;not null" json:"game_uuid"`
	Round          int       `gorm:"not null" json:"round"`
	ShipsRemaining int       `json:"ships_remaining"`
	Finished       bool      `json:"finished"`
	Dump           string    `gorm:"type:text;not null" json:"dump"`
}

func (Snapshot) TableName() string {
	return "game_snapshots"
}

type SnapshotStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open opens the SQLite database at path and migrates the snapshot
// table. An empty path keeps the snapshots in memory.
func Open(path string, log zerolog.Logger) (*SnapshotStore, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// sqlite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}

	if path == "" {
		log.Info().Msg("keeping game snapshots in memory")
	} else {
		log.Info().Str("path", path).Msg("keeping game snapshots in sqlite")
	}

	return &SnapshotStore{db: db, logger: log}, nil
}

// Save stores the current state of the game.
func (ss *SnapshotStore) Save(ctx context.Context, game *mb.Game) (Snapshot, error) {
	snapshot := Snapshot{
		GameUuid:       game.Uuid(),
		Round:          game.Round(),
		ShipsRemaining: len(game.Ships()),
		Finished:       game.IsOver(),
		Dump:           game.Dump(),
	}

	if err := ss.db.WithContext(ctx).Create(&snapshot).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to save snapshot of game %s: %w", game.Uuid(), err)
	}

	ss.logger.Debug().
		Str("game", snapshot.GameUuid).
		Int("round", snapshot.Round).
		Msg("snapshot saved")
	return snapshot, nil
}

// Latest returns the most recent snapshot of the game.
func (ss *SnapshotStore) Latest(ctx context.Context, gameUuid string) (Snapshot, error) {
	var snapshot Snapshot
	err := ss.db.WithContext(ctx).
		Where("game_uuid = ?", gameUuid).
		Order("round DESC").
		Order("id DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch snapshot of game %s: %w", gameUuid, err)
	}
	return snapshot, nil
}

// History returns every snapshot of the game ordered by round.
func (ss *SnapshotStore) History(ctx context.Context, gameUuid string) ([]Snapshot, error) {
	snapshots := make([]Snapshot, 0)
	err := ss.db.WithContext(ctx).
		Where("game_uuid = ?", gameUuid).
		Order("round ASC").
		Order("id ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots of game %s: %w", gameUuid, err)
	}
	return snapshots, nil
}

// Restore rebuilds the game from its latest snapshot. A dump only
// knows the damaged cells of ships still afloat, so hits on ships
// that were already removed are missing from the restored hit
// history and the rendered board can differ from the live game.
func (ss *SnapshotStore) Restore(ctx context.Context, gameUuid string, opts ...mb.GameOption) (*mb.Game, error) {
	snapshot, err := ss.Latest(ctx, gameUuid)
	if err != nil {
		return nil, err
	}

	opts = append([]mb.GameOption{mb.WithUuid(snapshot.GameUuid), mb.WithRound(snapshot.Round)}, opts...)
	return mb.ParseDump(snapshot.Dump, opts...)
}

func (ss *SnapshotStore) Close() error {
	sqlDB, err := ss.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
