package battleship

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/moving-battleship/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int

	isDifficultyValid(uint8) bool
}

type BattleshipGameManager struct {
	games map[string]*Game
	fleet FleetConfig
	rng   *rand.Rand
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// NewBattleshipGameManager creates a manager that populates every new
// game with the given fleet. A nil rng is seeded from the clock.
func NewBattleshipGameManager(fleet FleetConfig, rng *rand.Rand) *BattleshipGameManager {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		fleet: fleet,
		rng:   rng,
	}
}

func (bgm *BattleshipGameManager) CreateGame(difficulty uint8) (*Game, error) {
	if !bgm.isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty()
	}
	boardSize := GridSizeForDifficulty(difficulty)

	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	ships, err := NewFleet(bgm.fleet.ShipCount, bgm.fleet.ShipLength, boardSize, bgm.rng)
	if err != nil {
		return nil, err
	}

	gameUuid := uuid.NewString()[:6]
	game := NewGame(boardSize, ships, WithUuid(gameUuid), WithDifficulty(difficulty))
	bgm.games[gameUuid] = game

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

func (bgm *BattleshipGameManager) isDifficultyValid(difficulty uint8) bool {
	return !(difficulty != GameDifficultyEasy && difficulty != GameDifficultyNormal && difficulty != GameDifficultyHard)
}

func GridSizeForDifficulty(difficulty uint8) int {
	switch difficulty {
	case GameDifficultyEasy:
		return GridSizeEasy
	case GameDifficultyNormal:
		return GridSizeNormal
	default:
		return GridSizeHard
	}
}
