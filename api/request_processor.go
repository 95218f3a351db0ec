package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/saeidalz13/moving-battleship/db/sqlc"
	"github.com/saeidalz13/moving-battleship/internal/storage"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	mc "github.com/saeidalz13/moving-battleship/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQueryEncodingKeyword string = "encoding"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	snapshots      *storage.SnapshotStore
	ipnet          net.IPNet
	logger         zerolog.Logger
}

// NewRequestProcessor wires the managers together. A nil querier
// disables analytics and a nil snapshot store disables snapshots.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
	snapshots *storage.SnapshotStore,
	logger zerolog.Logger,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		snapshots:      snapshots,
		logger:         logger,
	}
	if q != nil {
		rp.analytics = sqlc.NewAnalyticsManager(q)
	}

	rp.ipnet = getServerIpNet(logger)
	return rp
}

// getServerIpNet returns the first IPv4 network of an interface
// that is up, falling back to loopback.
func getServerIpNet(logger zerolog.Logger) net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list network interfaces")
		return fallback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			logger.Warn().Err(err).Str("iface", iface.Name).Msg("failed to read interface addresses")
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: ipnet.Mask}
			}
		}
	}

	logger.Warn().Msg("no server ipnet found, analytics are recorded against loopback")
	return fallback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	encoding, err := mc.ParseEncoding(r.URL.Query().Get(URLQueryEncodingKeyword))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		rp.logger.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("could not open websocket connection")
		return
	}

	rp.logger.Info().
		Str("remote_addr", conn.RemoteAddr().String()).
		Str("encoding", encoding).
		Msg("a new connection established")

	session := rp.sessionManager.GenerateNewSession(conn)
	session.SetEncoding(encoding)
	rp.processSessionRequests(session)
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	logger := session.Logger()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

sessionLoop:
	for {
		messageType, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// retries are exhausted or the client went away
			break sessionLoop
		}

		payload, err = mc.NormalizePayload(messageType, payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError(err.Error(), "binary frames must be msgpack encoded")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeCreateGame:
			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			if respMsg.Error == nil {
				if previous := session.Game(); previous != nil {
					rp.gameManager.TerminateGame(previous.Uuid())
				}
				session.SetGame(game)
				rp.recordGameCreated(serverPqtypeInet)
				rp.saveSnapshot(game, logger)
				logger.Info().
					Str("game_uuid", game.Uuid()).
					Int("board_size", game.BoardSize()).
					Msg("game created")
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAttack:
			game := session.Game()
			result, respMsg := NewRequest(payload).HandleAttack(game)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			logger.Debug().
				Str("game_uuid", game.Uuid()).
				Int("round", result.Round).
				Int("hits", len(result.Hits)).
				Int("terminations", result.Terminations).
				Msg("round played")
			rp.recordRound(serverPqtypeInet, result.Terminations)
			rp.saveSnapshot(game, logger)

			if game.IsOver() {
				respEndGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respEndGame.AddPayload(mc.RespEndGame{GameUuid: game.Uuid(), Rounds: game.Round()})

				rp.gameManager.TerminateGame(game.Uuid())
				session.SetGame(nil)
				logger.Info().Str("game_uuid", game.Uuid()).Int("round", game.Round()).Msg("game over")

				if err := rp.sessionManager.WriteToSessionConn(session, respEndGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeSnapshot:
			respMsg := NewRequest(payload).HandleSnapshot(session.Game())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// Analytics failures never end a session.
func (rp RequestProcessor) recordGameCreated(serverIp pqtype.Inet) {
	if rp.analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := rp.analytics.IncrementGamesCreatedCount(ctx, serverIp); err != nil {
		rp.logger.Error().Err(err).Msg("failed to record created game")
	}
}

func (rp RequestProcessor) recordRound(serverIp pqtype.Inet, terminations int) {
	if rp.analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := rp.analytics.RecordRound(ctx, serverIp, terminations); err != nil {
		rp.logger.Error().Err(err).Msg("failed to record round")
	}
}

func (rp RequestProcessor) saveSnapshot(game *mb.Game, logger zerolog.Logger) {
	if rp.snapshots == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if _, err := rp.snapshots.Save(ctx, game); err != nil {
		logger.Error().Err(err).Str("game_uuid", game.Uuid()).Msg("failed to save snapshot")
	}
}
