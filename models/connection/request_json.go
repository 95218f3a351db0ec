package connection

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

// Coordinates of the bomb for the next round.
type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}
