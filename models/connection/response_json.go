package connection

import (
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid       string       `json:"game_uuid"`
	BoardSize      int          `json:"board_size"`
	ShipsRemaining int          `json:"ships_remaining"`
	Board          mb.BoardView `json:"board"`
}

type RespRoundReport struct {
	Round          int              `json:"round"`
	Hits           int              `json:"hits"`
	HitCoordinates []mb.Coordinates `json:"hit_coordinates"`
	Terminations   int              `json:"terminations"`
	ShipsRemaining int              `json:"ships_remaining"`
	Board          mb.BoardView     `json:"board"`
}

func NewRespRoundReport(result mb.RoundResult) RespRoundReport {
	return RespRoundReport{
		Round:          result.Round,
		Hits:           len(result.Hits),
		HitCoordinates: result.Hits,
		Terminations:   result.Terminations,
		ShipsRemaining: result.ShipsRemaining,
		Board:          result.Board,
	}
}

type RespEndGame struct {
	GameUuid string `json:"game_uuid"`
	Rounds   int    `json:"rounds"`
}

type RespSnapshot struct {
	GameUuid string `json:"game_uuid"`
	Round    int    `json:"round"`
	Dump     string `json:"dump"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
