package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/moving-battleship/internal/error"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	mc "github.com/saeidalz13/moving-battleship/models/connection"
)

// Every incoming valid request will have this structure.
// The payload is the raw websocket message including the code.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func (r Request) HandleCreateGame(gameManager mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal create game request")
		return nil, resp
	}

	game, err := gameManager.CreateGame(reqCreateGame.Payload.GameDifficulty)
	if err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateGame{
		GameUuid:       game.Uuid(),
		BoardSize:      game.BoardSize(),
		ShipsRemaining: len(game.Ships()),
		Board:          game.Board(),
	})
	return game, resp
}

// HandleAttack plays one round with the requested coordinates
// as the new bomb. The round result is only valid when the
// message carries no error.
func (r Request) HandleAttack(game *mb.Game) (mb.RoundResult, mc.Message[mc.RespRoundReport]) {
	resp := mc.NewMessage[mc.RespRoundReport](mc.CodeRoundReport)

	if game == nil {
		resp.AddError(cerr.ErrGameNotCreated().Error(), "attack before creating a game")
		return mb.RoundResult{}, resp
	}
	if game.IsOver() {
		resp.AddError(cerr.ErrGameIsOver(game.Uuid()).Error(), "no ships left to attack")
		return mb.RoundResult{}, resp
	}

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal attack request")
		return mb.RoundResult{}, resp
	}

	target := mb.NewCoordinates(reqAttack.Payload.X, reqAttack.Payload.Y)
	if !target.InBounds(game.BoardSize()) {
		resp.AddError(cerr.ErrXorYOutOfGridBound(target.X, target.Y).Error(), "")
		return mb.RoundResult{}, resp
	}

	result := game.PlayRound(target)
	resp.AddPayload(mc.NewRespRoundReport(result))
	return result, resp
}

func (r Request) HandleSnapshot(game *mb.Game) mc.Message[mc.RespSnapshot] {
	resp := mc.NewMessage[mc.RespSnapshot](mc.CodeSnapshot)
	if game == nil {
		resp.AddError(cerr.ErrGameNotCreated().Error(), "snapshot before creating a game")
		return resp
	}

	resp.AddPayload(mc.RespSnapshot{
		GameUuid: game.Uuid(),
		Round:    game.Round(),
		Dump:     game.Dump(),
	})
	return resp
}
