package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/match3/internal/match3"
)

// maxTicks bounds a single tick request.
const maxTicks = 600

// GameView is the JSON form of a game.
type GameView struct {
	ID          string        `json:"id"`
	Game        string        `json:"game"`
	Level       int           `json:"level"`
	Seed        int64         `json:"seed"`
	Player      string        `json:"player"`
	Shape       string        `json:"shape"`
	Rows        int           `json:"rows"`
	Cols        int           `json:"cols"`
	Tiles       []match3.Tile `json:"tiles"`
	Valid       []bool        `json:"valid"`
	Score       int           `json:"score"`
	Combo       int           `json:"combo"`
	Hint        []int         `json:"hint,omitempty"`
	HintMove    *MoveView     `json:"hint_move,omitempty"`
	HintVisible bool          `json:"hint_visible"`
	Disabled    bool          `json:"disabled"`
	GameOver    bool          `json:"game_over"`
	Remaining   int           `json:"remaining"`
	TimeLimit   int           `json:"time_limit"`
	Shuffles    int           `json:"shuffles"`
}

// MoveView is a swap between two cell indices.
type MoveView struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SwapRequest is the body of POST .../swap: a cell and a drag vector.
type SwapRequest struct {
	Index int     `json:"index"`
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
}

// SwapResponse reports what a swap did.
type SwapResponse struct {
	Outcome    string   `json:"outcome"`
	From       int      `json:"from"`
	To         int      `json:"to"`
	ScoreDelta int      `json:"score_delta"`
	Combo      int      `json:"combo"`
	Cascades   int      `json:"cascades"`
	Game       GameView `json:"game"`
}

// TickRequest is the optional body of POST .../tick.
type TickRequest struct {
	Ticks int `json:"ticks"`
}

// ActionResponse answers shuffle, hint and tick requests.
type ActionResponse struct {
	Applied bool     `json:"applied"`
	Game    GameView `json:"game"`
}

// ScoreView is one scoreboard row.
type ScoreView struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	Player    string    `json:"player"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *session) view() GameView {
	snap := s.engine.Snapshot()
	v := GameView{
		ID:          s.id,
		Game:        s.gameID,
		Level:       s.level,
		Seed:        s.seed,
		Player:      s.player,
		Shape:       snap.Shape.String(),
		Rows:        snap.Rows,
		Cols:        snap.Cols,
		Tiles:       snap.Tiles,
		Valid:       snap.Valid,
		Score:       snap.Score,
		Combo:       snap.Combo,
		HintVisible: snap.HintVisible,
		Disabled:    snap.Disabled,
		GameOver:    snap.GameOver,
		Remaining:   snap.Remaining,
		TimeLimit:   snap.TimeLimit,
		Shuffles:    s.engine.Shuffles(),
	}
	// the hint stays secret until the engine reveals it
	if snap.HintVisible {
		v.Hint = snap.Hint
		v.HintMove = &MoveView{From: snap.HintMove.From, To: snap.HintMove.To}
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "games": s.games.len()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := newSession(s.gameCfg, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.games.add(sess); err != nil {
		s.writeError(w, err)
		return
	}
	if s.logger != nil {
		s.logger.Info("game created", "id", sess.id, "game", sess.gameID, "level", sess.level, "seed", sess.seed)
	}

	w.Header().Set("Location", "/api/v1/games/"+sess.id)
	writeJSON(w, http.StatusCreated, sess.view())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (int, any) {
		return http.StatusOK, sess.view()
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.remove(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.withSession(w, r, func(sess *session) (int, any) {
		out := sess.engine.TrySwap(req.Index, req.DX, req.DY)
		return http.StatusOK, SwapResponse{
			Outcome:    out.Kind.String(),
			From:       out.From,
			To:         out.To,
			ScoreDelta: out.ScoreDelta,
			Combo:      out.Combo,
			Cascades:   out.Cascades,
			Game:       sess.view(),
		}
	})
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	req := TickRequest{Ticks: 1}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Ticks < 1 || req.Ticks > maxTicks {
		s.writeError(w, fmt.Errorf("server: ticks must be 1-%d: %w", maxTicks, ErrBadRequest))
		return
	}
	s.withSession(w, r, func(sess *session) (int, any) {
		applied := false
		for range req.Ticks {
			if sess.engine.GameOver() {
				break
			}
			sess.engine.Tick()
			applied = true
		}
		if sess.engine.GameOver() {
			s.saveScore(sess)
		}
		return http.StatusOK, ActionResponse{Applied: applied, Game: sess.view()}
	})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (int, any) {
		ok := sess.engine.RequestShuffle()
		return http.StatusOK, ActionResponse{Applied: ok, Game: sess.view()}
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (int, any) {
		ok := sess.engine.ShowHint()
		return http.StatusOK, ActionResponse{Applied: ok, Game: sess.view()}
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (int, any) {
		sess.engine.Restart()
		sess.saved = false
		return http.StatusOK, sess.view()
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "score storage disabled"})
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, fmt.Errorf("server: invalid limit %q: %w", v, ErrBadRequest))
			return
		}
		limit = n
	}

	entries, err := s.store.TopScores(chi.URLParam(r, "game"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rows := make([]ScoreView, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, ScoreView{Rank: i + 1, Score: e.Score, Player: e.SessionID, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, rows)
}

// withSession runs fn with the session named in the URL locked.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session) (int, any)) {
	sess, err := s.games.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.mu.Lock()
	status, body := fn(sess)
	sess.mu.Unlock()
	writeJSON(w, status, body)
}

// saveScore records a finished game once. Caller holds sess.mu.
func (s *Server) saveScore(sess *session) {
	if sess.saved || s.store == nil {
		return
	}
	sess.saved = true
	if _, err := s.store.SaveScore(sess.gameID, sess.engine.Score(), sess.player); err != nil && s.logger != nil {
		s.logger.Error("could not save score", "id", sess.id, "error", err)
	}
}

// decodeBody reads an optional JSON body into v. An empty body keeps v as is.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("server: invalid body: %v: %w", err, ErrBadRequest)
	}
	return nil
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, match3.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyGames):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusCode(err)
	if status >= 500 && s.logger != nil {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
