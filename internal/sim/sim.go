// Package sim autoplays match-3 games by always taking the hint move. It is
// used to benchmark the engine and to compare difficulty settings.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/match3/internal/games/gems"
	"github.com/vovakirdan/match3/internal/match3"
)

// ErrInvalidOptions is returned by Run for unusable options.
var ErrInvalidOptions = errors.New("invalid options")

// Options control a simulation run.
type Options struct {
	Games        int   // games to play
	Workers      int   // parallel players, each with its own engine
	Seed         int64 // game i is dealt with Seed+i
	Shape        match3.Shape
	Level        int // 1-based level number
	ViewportW    int
	ViewportH    int
	Settings     match3.Settings
	MaxMoves     int // moves per game before it is abandoned
	TicksPerMove int // countdown ticks spent thinking about each move

	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
}

// DefaultOptions returns a small single-worker run on the first level.
func DefaultOptions() Options {
	return Options{
		Games:        100,
		Workers:      1,
		Seed:         1,
		Shape:        match3.ShapeNormal,
		Level:        1,
		ViewportW:    360,
		ViewportH:    600,
		Settings:     match3.DefaultSettings(),
		MaxMoves:     500,
		TicksPerMove: 1,
	}
}

func (o Options) validate() error {
	switch {
	case o.Games < 1:
		return fmt.Errorf("sim: games must be positive: %w", ErrInvalidOptions)
	case o.MaxMoves < 1:
		return fmt.Errorf("sim: max moves must be positive: %w", ErrInvalidOptions)
	case o.TicksPerMove < 0:
		return fmt.Errorf("sim: negative ticks per move: %w", ErrInvalidOptions)
	case o.ViewportW <= 0 || o.ViewportH <= 0:
		return fmt.Errorf("sim: viewport must be positive: %w", ErrInvalidOptions)
	case gems.GetLevel(o.Level-1) == nil:
		return fmt.Errorf("sim: level %d out of range 1-%d: %w", o.Level, gems.LevelCount(), ErrInvalidOptions)
	}
	if err := o.Settings.Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	return nil
}

// GameResult summarises one autoplayed game.
type GameResult struct {
	Seed        int64
	Score       int
	Moves       int
	MaxCombo    int
	Cascades    int
	Reverted    int  // hint moves that formed no run
	Seeds       int  // near-matches the hint engine had to force
	Shuffles    int  // rescue shuffles, including ones requested when stuck
	Regenerated bool // the board had to be dealt again
	GameOver    bool // the countdown ran out
	Stuck       bool // no move could be found even after shuffling
}

// PlayGame autoplays a single game dealt with seed.
func PlayGame(opts Options, seed int64) GameResult {
	level := gems.GetLevel(opts.Level - 1)
	engine := match3.New(opts.Settings, rand.New(rand.NewSource(seed)))
	engine.NewBoard(opts.Shape, level.CellSize, opts.ViewportH, opts.ViewportW)

	res := GameResult{Seed: seed}
	for res.Moves < opts.MaxMoves && !engine.GameOver() {
		hint := engine.Hint()
		if hint.Empty() {
			if !engine.RequestShuffle() || engine.Hint().Empty() {
				res.Stuck = true
				break
			}
			res.Shuffles++
			continue
		}

		out := engine.Apply(hint.Move)
		switch out.Kind {
		case match3.OutcomeResolved:
			res.Moves++
			res.Cascades += out.Cascades
			res.MaxCombo = max(res.MaxCombo, out.Combo)
		case match3.OutcomeReverted:
			res.Moves++
			res.Reverted++
		default:
			res.Stuck = true
		}
		if res.Stuck {
			break
		}

		for range opts.TicksPerMove {
			engine.Tick()
		}
	}

	rescues := engine.Rescues()
	res.Score = engine.Score()
	res.Seeds = rescues.Seeds
	res.Shuffles += rescues.Shuffles
	res.Regenerated = rescues.Regenerated
	res.GameOver = engine.GameOver()
	return res
}

// Run plays opts.Games games across opts.Workers goroutines. Results are
// ordered by game index, so a run is reproducible whatever the worker count.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	workers := min(max(opts.Workers, 1), opts.Games)

	bar := pb.New(opts.Games)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	results := make([]GameResult, opts.Games)
	jobs := make(chan int, workers*2)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = PlayGame(opts, opts.Seed+int64(i))
				bar.Increment()
			}
		}()
	}

	var err error
feed:
	for i := range opts.Games {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	return Summarize(opts, results, elapsed), nil
}
