package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const addShipsTerminatedCount = `-- name: AddShipsTerminatedCount :exec
INSERT INTO game_server_analytics (server_ip, ships_terminated)
VALUES ($1, $2)
ON CONFLICT (server_ip) DO UPDATE
SET ships_terminated = game_server_analytics.ships_terminated + $2, updated_at = NOW()
`

type AddShipsTerminatedCountParams struct {
	ServerIp        pqtype.Inet
	ShipsTerminated int64
}

func (q *Queries) AddShipsTerminatedCount(ctx context.Context, arg AddShipsTerminatedCountParams) error {
	_, err := q.db.ExecContext(ctx, addShipsTerminatedCount, arg.ServerIp, arg.ShipsTerminated)
	return err
}

const getGamesCreatedCount = `-- name: GetGamesCreatedCount :one
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGamesCreatedCount, serverIp)
	var games_created int64
	err := row.Scan(&games_created)
	return games_created, err
}

const getRoundsPlayedCount = `-- name: GetRoundsPlayedCount :one
SELECT rounds_played FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetRoundsPlayedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getRoundsPlayedCount, serverIp)
	var rounds_played int64
	err := row.Scan(&rounds_played)
	return rounds_played, err
}

const getShipsTerminatedCount = `-- name: GetShipsTerminatedCount :one
SELECT ships_terminated FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetShipsTerminatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getShipsTerminatedCount, serverIp)
	var ships_terminated int64
	err := row.Scan(&ships_terminated)
	return ships_terminated, err
}

const incrementGamesCreatedCount = `-- name: IncrementGamesCreatedCount :exec
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET games_created = game_server_analytics.games_created + 1, updated_at = NOW()
`

func (q *Queries) IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesCreatedCount, serverIp)
	return err
}

const incrementRoundsPlayedCount = `-- name: IncrementRoundsPlayedCount :exec
INSERT INTO game_server_analytics (server_ip, rounds_played)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET rounds_played = game_server_analytics.rounds_played + 1, updated_at = NOW()
`

func (q *Queries) IncrementRoundsPlayedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementRoundsPlayedCount, serverIp)
	return err
}
