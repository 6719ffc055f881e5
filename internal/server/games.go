package server

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/gems"
	"github.com/vovakirdan/match3/internal/match3"
)

var (
	// ErrGameNotFound is returned for unknown or deleted game IDs.
	ErrGameNotFound = errors.New("game not found")
	// ErrTooManyGames is returned when the server holds MaxGames games.
	ErrTooManyGames = errors.New("too many games")
	// ErrBadRequest marks malformed or out-of-range request fields.
	ErrBadRequest = errors.New("bad request")
)

// NewGameRequest is the body of POST /api/v1/games. Shape wins over Game
// when both are given.
type NewGameRequest struct {
	Game       string `json:"game,omitempty"`
	Shape      string `json:"shape,omitempty"`
	Level      int    `json:"level,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Player     string `json:"player,omitempty"`
}

// session is one hosted game. The engine is not safe for concurrent use, so
// every access holds mu.
type session struct {
	mu      sync.Mutex
	id      string
	gameID  string
	level   int
	seed    int64
	player  string
	engine  *match3.Engine
	saved   bool
	created time.Time
}

// gameTable holds the live sessions.
type gameTable struct {
	mu    sync.RWMutex
	games map[string]*session
	max   int
}

func newGameTable(max int) *gameTable {
	return &gameTable{games: make(map[string]*session), max: max}
}

func (t *gameTable) add(s *session) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.max > 0 && len(t.games) >= t.max {
		return ErrTooManyGames
	}
	t.games[s.id] = s
	return nil
}

func (t *gameTable) get(id string) (*session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.games[id]
	if !ok {
		return nil, fmt.Errorf("server: %q: %w", id, ErrGameNotFound)
	}
	return s, nil
}

func (t *gameTable) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.games[id]; !ok {
		return fmt.Errorf("server: %q: %w", id, ErrGameNotFound)
	}
	delete(t.games, id)
	return nil
}

func (t *gameTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.games)
}

// newSession deals a fresh board for req on top of the base configuration.
func newSession(base config.Match3Config, req NewGameRequest) (*session, error) {
	shape, gameID, err := resolveShape(req)
	if err != nil {
		return nil, err
	}

	levelNum := req.Level
	if levelNum == 0 {
		levelNum = 1
	}
	level := gems.GetLevel(levelNum - 1)
	if level == nil {
		return nil, fmt.Errorf("server: level %d out of range 1-%d: %w", levelNum, gems.LevelCount(), ErrBadRequest)
	}

	cfg := base
	if req.Difficulty != "" {
		preset, err := config.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("server: %v: %w", err, ErrBadRequest)
		}
		config.ApplyMatch3Preset(&cfg, preset)
	}
	settings := cfg.Settings()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	player := req.Player
	if player == "" {
		player = "api-" + id[:8]
	}

	engine := match3.New(settings, rand.New(rand.NewSource(seed)))
	engine.NewBoard(shape, level.CellSize, cfg.Board.ViewportH, cfg.Board.ViewportW)

	return &session{
		id:      id,
		gameID:  gameID,
		level:   levelNum,
		seed:    seed,
		player:  player,
		engine:  engine,
		created: time.Now(),
	}, nil
}

func resolveShape(req NewGameRequest) (match3.Shape, string, error) {
	if req.Shape != "" {
		shape, err := match3.ParseShape(req.Shape)
		if err != nil {
			return 0, "", fmt.Errorf("server: %v: %w", err, ErrBadRequest)
		}
		return shape, gameIDFor(shape), nil
	}
	switch req.Game {
	case "", "match3", "match3_heart":
		shape := gems.ShapeFor(req.Game)
		return shape, gameIDFor(shape), nil
	}
	return 0, "", fmt.Errorf("server: unknown game %q: %w", req.Game, ErrBadRequest)
}

func gameIDFor(shape match3.Shape) string {
	if shape == match3.ShapeHeart {
		return "match3_heart"
	}
	return "match3"
}
