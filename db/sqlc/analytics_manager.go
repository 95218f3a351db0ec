package sqlc

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"github.com/sqlc-dev/pqtype"
)

const (
	// Deadline for a single analytics call made from a session.
	QuerierCtxTimeout = time.Second * 10

	analyticsMaxConsecutiveFails = 3
	analyticsBreakerTimeout      = time.Second * 30
)

// AnalyticsManager records server counters. Writes go through a
// circuit breaker so that an unreachable database costs the game
// loop nothing once the breaker is open.
type AnalyticsManager struct {
	queries Querier
	breaker *gobreaker.CircuitBreaker
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{
		queries: queries,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "analytics",
			MaxRequests: 1,
			Timeout:     analyticsBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= analyticsMaxConsecutiveFails
			},
		}),
	}
}

func (a *AnalyticsManager) exec(op func() error) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		return nil, op()
	})
	return err
}

func (a *AnalyticsManager) BreakerState() gobreaker.State {
	return a.breaker.State()
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.exec(func() error {
		return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
	})
}

// RecordRound counts a played round and the ships it terminated.
// Rounds without terminations skip the second query.
func (a *AnalyticsManager) RecordRound(ctx context.Context, serverIpNet pqtype.Inet, terminations int) error {
	return a.exec(func() error {
		if err := a.queries.IncrementRoundsPlayedCount(ctx, serverIpNet); err != nil {
			return err
		}
		if terminations == 0 {
			return nil
		}

		return a.queries.AddShipsTerminatedCount(ctx, AddShipsTerminatedCountParams{
			ServerIp:        serverIpNet,
			ShipsTerminated: int64(terminations),
		})
	})
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetRoundsPlayedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetRoundsPlayedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShipsTerminatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetShipsTerminatedCount(ctx, serverIpNet)
}
