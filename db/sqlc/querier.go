package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type Querier interface {
	AddShipsTerminatedCount(ctx context.Context, arg AddShipsTerminatedCountParams) error
	GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetRoundsPlayedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetShipsTerminatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementRoundsPlayedCount(ctx context.Context, serverIp pqtype.Inet) error
}

var _ Querier = (*Queries)(nil)
