package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type GameServerAnalytic struct {
	ServerIp        pqtype.Inet
	GamesCreated    int64
	RoundsPlayed    int64
	ShipsTerminated int64
	UpdatedAt       time.Time
}
