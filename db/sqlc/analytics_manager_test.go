package sqlc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testServerIp = pqtype.Inet{
	IPNet: net.IPNet{IP: net.IPv4(10, 0, 0, 7).To4(), Mask: net.CIDRMask(24, 32)},
	Valid: true,
}

func newTestAnalytics(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAnalyticsManager(New(db)), mock
}

func TestIncrementGamesCreatedCount(t *testing.T) {
	analytics, mock := newTestAnalytics(t)

	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(testServerIp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, analytics.IncrementGamesCreatedCount(context.Background(), testServerIp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRound(t *testing.T) {
	t.Run("without terminations", func(t *testing.T) {
		analytics, mock := newTestAnalytics(t)

		mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, rounds_played\)`).
			WithArgs(testServerIp).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, analytics.RecordRound(context.Background(), testServerIp, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with terminations", func(t *testing.T) {
		analytics, mock := newTestAnalytics(t)

		mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, rounds_played\)`).
			WithArgs(testServerIp).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, ships_terminated\)`).
			WithArgs(testServerIp, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, analytics.RecordRound(context.Background(), testServerIp, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on the first failure", func(t *testing.T) {
		analytics, mock := newTestAnalytics(t)

		mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, rounds_played\)`).
			WithArgs(testServerIp).
			WillReturnError(errors.New("connection reset"))

		err := analytics.RecordRound(context.Background(), testServerIp, 1)
		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	ctx := context.Background()

	for i := 0; i < analyticsMaxConsecutiveFails; i++ {
		mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
			WithArgs(testServerIp).
			WillReturnError(errors.New("connection refused"))
	}

	for i := 0; i < analyticsMaxConsecutiveFails; i++ {
		err := analytics.IncrementGamesCreatedCount(ctx, testServerIp)
		require.ErrorContains(t, err, "connection refused")
	}
	assert.Equal(t, gobreaker.StateOpen, analytics.BreakerState())

	// no query reaches the database while the breaker is open
	err := analytics.RecordRound(ctx, testServerIp, 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCounts(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(testServerIp).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(3))
	mock.ExpectQuery(`SELECT rounds_played FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(testServerIp).
		WillReturnRows(sqlmock.NewRows([]string{"rounds_played"}).AddRow(12))
	mock.ExpectQuery(`SELECT ships_terminated FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(testServerIp).
		WillReturnRows(sqlmock.NewRows([]string{"ships_terminated"}).AddRow(5))

	games, err := analytics.GetGamesCreatedCount(ctx, testServerIp)
	require.NoError(t, err)
	rounds, err := analytics.GetRoundsPlayedCount(ctx, testServerIp)
	require.NoError(t, err)
	ships, err := analytics.GetShipsTerminatedCount(ctx, testServerIp)
	require.NoError(t, err)

	assert.Equal(t, int64(3), games)
	assert.Equal(t, int64(12), rounds)
	assert.Equal(t, int64(5), ships)
	assert.NoError(t, mock.ExpectationsWereMet())
}
