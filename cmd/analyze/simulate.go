package main

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/klondike/game/config"
	"github.com/wricardo/klondike/game/engine"
)

type simulateOptions struct {
	Games    int
	Seed     int64
	MaxSteps int
	Workers  int
}

// gameResult is the outcome of one autoplayed deal
type gameResult struct {
	Seed       int64
	Won        bool
	Foundation int
	Moves      int
	Steps      int
}

// simulationReport aggregates autoplayed deals
type simulationReport struct {
	Config  string
	Results []gameResult
}

func loadConfig(dir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	return manager.LoadConfig(name)
}

// simulate autoplays opts.Games deals, seeds opts.Seed onward, on up to
// opts.Workers goroutines. Results are ordered by seed.
func simulate(ctx context.Context, cfg *engine.GameConfig, opts simulateOptions) (*simulationReport, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	results := make([]gameResult, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dealt := *cfg
			dealt.Seed = seed
			eng, err := engine.NewEngine(&dealt)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			result := autoplay(eng, opts.MaxSteps)
			result.Seed = seed
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &simulationReport{Config: cfg.Name, Results: results}, nil
}

// autoplay plays greedily until the game is won, no progress is possible,
// or maxSteps actions were taken. It only makes moves that progress: any
// foundation move, a tableau move that turns up a hidden card, or a waste
// play. Otherwise it draws, and gives up after a full pass through the
// stock without a move.
func autoplay(eng *engine.GameEngine, maxSteps int) gameResult {
	state := eng.GetState()
	movedSinceRecycle := true
	steps := 0

	for ; steps < maxSteps && !state.Won; steps++ {
		if move, ok := progressMove(&state.Board); ok {
			eng.Select(move.CardRef())
			if !eng.AttemptMove(move.Target).Success {
				break
			}
			movedSinceRecycle = true
			state = eng.GetState()
			continue
		}

		if len(state.Stock) == 0 {
			if !movedSinceRecycle || len(state.Waste) == 0 {
				break
			}
			movedSinceRecycle = false
		}
		state = eng.DrawFromStock()
	}

	return gameResult{
		Won:        state.Won,
		Foundation: state.FoundationCount(),
		Moves:      state.MoveCount,
		Steps:      steps,
	}
}

// progressMove picks the first legal move that advances the game
func progressMove(b *engine.Board) (engine.Hint, bool) {
	var fallback *engine.Hint
	for _, move := range engine.LegalMoves(b) {
		if move.Target.Kind == engine.PileFoundation {
			return move, true
		}
		if fallback != nil {
			continue
		}
		switch move.Source.Kind {
		case engine.PileTableau:
			pile := b.Tableau[move.PileIndex]
			if move.CardIndex > 0 && move.CardIndex == pile.FaceUpStart() {
				m := move
				fallback = &m
			}
		case engine.PileWaste:
			m := move
			fallback = &m
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return engine.Hint{}, false
}

// Wins counts won games
func (r *simulationReport) Wins() int {
	wins := 0
	for _, result := range r.Results {
		if result.Won {
			wins++
		}
	}
	return wins
}

func (r *simulationReport) Print(out io.Writer) {
	games := len(r.Results)
	if games == 0 {
		fmt.Fprintln(out, "No games played")
		return
	}

	foundation, moves := 0, 0
	for _, result := range r.Results {
		foundation += result.Foundation
		moves += result.Moves
	}

	fmt.Fprintf(out, "Config: %s\n", r.Config)
	fmt.Fprintf(out, "Games: %d (seeds %d-%d)\n", games, r.Results[0].Seed, r.Results[games-1].Seed)
	fmt.Fprintf(out, "Wins: %d (%.1f%%)\n", r.Wins(), 100*float64(r.Wins())/float64(games))
	fmt.Fprintf(out, "Avg foundation cards: %.1f/%d\n", float64(foundation)/float64(games), engine.DeckSize)
	fmt.Fprintf(out, "Avg moves: %.1f\n", float64(moves)/float64(games))
}
