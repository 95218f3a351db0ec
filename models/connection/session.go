package connection

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	mb "github.com/saeidalz13/moving-battleship/models/battleship"
)

const (
	maxWsRetries  uint8 = 2
	backOffFactor uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// A session is one websocket connection. It owns at most one
// game at a time and is served by a single goroutine.
type Session struct {
	id        string
	conn      *websocket.Conn
	game      *mb.Game
	encoding  string
	createdAt time.Time
	logger    zerolog.Logger
}

func NewSession(id string, conn *websocket.Conn, logger zerolog.Logger) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		encoding:  EncodingJSON,
		createdAt: time.Now(),
		logger:    logger.With().Str("session_id", id).Str("remote_addr", conn.RemoteAddr().String()).Logger(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.game = game
}

func (s *Session) Encoding() string {
	return s.encoding
}

func (s *Session) SetEncoding(encoding string) {
	s.encoding = encoding
}

func (s *Session) Logger() zerolog.Logger {
	return s.logger
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		s.logger.Warn().Err(err).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		s.logger.Warn().Err(err).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		s.logger.Info().Err(err).Msg("close error")
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error().Err(err).Msg("critical error")
		return ConnLoopBreak
	}

	/*
		This might mean that the client is not from the application.
		Breaking not to overwhelm the server with invalid payloads (e.g. binary data)
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		s.logger.Warn().Err(err).Msg("non-critical error")
		return ConnLoopBreak
	}

	s.logger.Error().Err(err).Msg("unexpected error")
	return ConnLoopBreak
}

// Writes to the connection of that session, retrying with a
// linear backoff on timeouts.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

writeLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			if s.encoding != EncodingMsgpack {
				err = s.conn.WriteJSON(msg)
				break
			}
			respBytes, encErr := EncodeMsgpack(msg)
			if encErr != nil {
				return NewConnErr(ConnInvalidMsgType).AddDesc("failed to encode msgpack").WithCause(encErr)
			}
			err = s.conn.WriteMessage(websocket.BinaryMessage, respBytes)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWsRetries {
				retries++
				s.logger.Warn().Uint8("retry", retries).Msg("writing to ws failed; retrying")
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeLoop
			}
			s.logger.Error().Err(err).Msg("max retries reached for writing to ws")
			return NewConnErr(ConnLoopBreak).WithCause(err)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop").WithCause(err)
		}
	}
}

// Handles the errors that occur when reading from the ws
// connection. Anything but ConnLoopContinue ends the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopRetry:
		if retries < maxWsRetries {
			s.logger.Warn().Uint8("retry", retries).Msg("failed to read from ws conn; retrying")
			time.Sleep(time.Duration((retries+1)*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		s.logger.Debug().Err(err).Msg("break ws conn loop")
		return ConnLoopBreak
	}
}

var _ ConnectionHandler = (*Session)(nil)
