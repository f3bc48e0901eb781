package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wricardo/klondike/game/engine"
)

const shippedConfigs = "../../configs"

func up(r engine.Rank, s engine.Suit) engine.Card   { return engine.Card{Rank: r, Suit: s, FaceUp: true} }
func down(r engine.Rank, s engine.Suit) engine.Card { return engine.Card{Rank: r, Suit: s} }

func emptyBoard() engine.Board {
	var b engine.Board
	for i, suit := range engine.Suits {
		b.Foundations[i] = engine.Foundation{Suit: suit, Cards: engine.Pile{}}
	}
	return b
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantCount int
	}{
		{
			name:    "valid",
			content: `{"name": "Ok", "description": "fine", "messages": {"welcome": "Hi", "victory": "Won"}}`,
		},
		{
			name:      "broken json",
			content:   `{"name": `,
			wantCount: 1,
		},
		{
			name:      "every problem listed",
			content:   `{"history_limit": -1, "messages": {"rejected": "no placeholder"}}`,
			wantCount: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".json", tt.content)
			result := validateConfig(path)
			if len(result.Errors) != tt.wantCount {
				t.Errorf("Expected %d errors, got %v", tt.wantCount, result.Errors)
			}
			if result.Valid() != (tt.wantCount == 0) {
				t.Errorf("Valid() = %v with errors %v", result.Valid(), result.Errors)
			}
		})
	}

	if result := validateConfig(filepath.Join(dir, "missing.json")); result.Valid() {
		t.Error("Expected missing file to be invalid")
	}
}

func TestRunValidate(t *testing.T) {
	t.Run("shipped configs", func(t *testing.T) {
		var out bytes.Buffer
		if err := runValidate(&out, shippedConfigs); err != nil {
			t.Fatalf("Expected shipped configs to be valid: %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "✓ classic.json") {
			t.Errorf("Expected classic listed, got %s", out.String())
		}
	})

	t.Run("invalid file reported", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "good.json", `{"name": "Ok", "description": "fine", "messages": {"welcome": "Hi", "victory": "Won"}}`)
		writeFile(t, dir, "bad.json", `{"name": "Bad"}`)

		var out bytes.Buffer
		err := runValidate(&out, dir)
		if err == nil {
			t.Fatal("Expected error for invalid config")
		}
		for _, want := range []string{"✗ bad.json", "description is required", "✓ good.json", "1 of 2 configurations valid"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("Expected %q in output:\n%s", want, out.String())
			}
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if err := runValidate(&bytes.Buffer{}, t.TempDir()); err == nil {
			t.Error("Expected error for directory without configs")
		}
	})
}

func TestProgressMove(t *testing.T) {
	tests := []struct {
		name   string
		board  func() engine.Board
		want   engine.PileRef
		wantOK bool
	}{
		{
			name: "foundation first",
			board: func() engine.Board {
				b := emptyBoard()
				b.Tableau[0] = engine.Pile{down(engine.Five, engine.Clubs), up(engine.Ace, engine.Spades)}
				b.Tableau[1] = engine.Pile{up(engine.Eight, engine.Spades)}
				b.Waste = engine.Pile{up(engine.Seven, engine.Diamonds)}
				return b
			},
			want:   engine.FoundationRef(engine.Spades),
			wantOK: true,
		},
		{
			name: "tableau move that turns up a card",
			board: func() engine.Board {
				b := emptyBoard()
				b.Tableau[0] = engine.Pile{down(engine.Five, engine.Clubs), up(engine.Seven, engine.Hearts)}
				b.Tableau[1] = engine.Pile{up(engine.Eight, engine.Spades)}
				return b
			},
			want:   engine.TableauRef(1),
			wantOK: true,
		},
		{
			name: "shuffling a whole pile is not progress",
			board: func() engine.Board {
				b := emptyBoard()
				b.Tableau[0] = engine.Pile{up(engine.Seven, engine.Hearts)}
				b.Tableau[1] = engine.Pile{up(engine.Eight, engine.Spades)}
				return b
			},
		},
		{
			name: "waste play",
			board: func() engine.Board {
				b := emptyBoard()
				b.Tableau[0] = engine.Pile{up(engine.Seven, engine.Hearts)}
				b.Tableau[1] = engine.Pile{up(engine.Eight, engine.Spades)}
				b.Waste = engine.Pile{up(engine.Seven, engine.Diamonds)}
				return b
			},
			want:   engine.TableauRef(1),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := tt.board()
			move, ok := progressMove(&board)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v (%+v)", tt.wantOK, ok, move)
			}
			if ok && move.Target != tt.want {
				t.Errorf("Expected target %v, got %v", tt.want, move.Target)
			}
		})
	}
}

func TestAutoplayFinishesNearlyWonGame(t *testing.T) {
	b := emptyBoard()
	for i, suit := range engine.Suits {
		for _, rank := range engine.Ranks {
			if suit == engine.Spades && rank == engine.King {
				continue
			}
			b.Foundations[i].Cards = append(b.Foundations[i].Cards, up(rank, suit))
		}
	}
	b.Tableau[0] = engine.Pile{up(engine.King, engine.Spades)}

	eng := engine.NewEngineWithDefaults()
	if err := eng.SetState(&engine.GameState{Board: b}); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	result := autoplay(eng, 10)
	if !result.Won || result.Foundation != engine.DeckSize || result.Moves != 1 {
		t.Errorf("Expected a one-move win, got %+v", result)
	}
}

func TestAutoplayStopsWithoutProgress(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Seed = 99
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}

	const limit = 10000
	result := autoplay(eng, limit)
	if result.Steps >= limit {
		t.Errorf("Expected autoplay to stop on its own, took %d steps", result.Steps)
	}
	if got := eng.GetState().CardCount(); got != engine.DeckSize {
		t.Errorf("Expected %d cards after autoplay, got %d", engine.DeckSize, got)
	}
}

func TestSimulate(t *testing.T) {
	cfg := engine.DefaultConfig()
	opts := simulateOptions{Games: 8, Seed: 10, MaxSteps: 3000, Workers: 3}

	first, err := simulate(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if len(first.Results) != 8 {
		t.Fatalf("Expected 8 results, got %d", len(first.Results))
	}
	for i, result := range first.Results {
		if result.Seed != 10+int64(i) {
			t.Errorf("Result %d has seed %d", i, result.Seed)
		}
	}

	opts.Workers = 1
	second, err := simulate(context.Background(), cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Error("Expected seeded simulations to be reproducible")
	}

	var out bytes.Buffer
	first.Print(&out)
	for _, want := range []string{"Games: 8 (seeds 10-17)", "Wins:", "Avg foundation cards:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in report:\n%s", want, out.String())
		}
	}

	if _, err := simulate(context.Background(), cfg, simulateOptions{Games: 0}); err == nil {
		t.Error("Expected error for zero games")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := simulate(ctx, cfg, opts); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestWriteSchema(t *testing.T) {
	var out bytes.Buffer
	if err := writeSchema(&out); err != nil {
		t.Fatalf("writeSchema failed: %v", err)
	}
	for _, want := range []string{"Klondike game configuration", `"history_limit"`, `"messages"`, `"welcome"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %s in schema:\n%s", want, out.String())
		}
	}
}

func TestPrintDeal(t *testing.T) {
	cfg := engine.DefaultConfig()

	var a, b bytes.Buffer
	if err := printDeal(&a, cfg, 7); err != nil {
		t.Fatal(err)
	}
	if err := printDeal(&b, cfg, 7); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("Expected the same seed to deal the same board")
	}
	if !strings.Contains(a.String(), "Stock: 24 | Waste: 0") || !strings.Contains(a.String(), "T6: ## ## ## ## ## ##") {
		t.Errorf("Unexpected deal:\n%s", a.String())
	}

	if err := printDeal(&bytes.Buffer{}, cfg, 0); err == nil {
		t.Error("Expected error for zero seed")
	}
}

func TestApp(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"deal", []string{"--dir", shippedConfigs, "deal", "--seed", "3"}, "Deal 3 (Classic)", false},
		{"deal practice", []string{"--dir", shippedConfigs, "deal", "--config", "practice"}, "Deal 1 (Practice)", false},
		{"validate", []string{"--dir", shippedConfigs, "validate"}, "configurations valid", false},
		{"simulate", []string{"--dir", shippedConfigs, "simulate", "--games", "2", "--workers", "2"}, "Games: 2", false},
		{"schema", []string{"schema"}, `"history_limit"`, false},
		{"unknown config", []string{"--dir", shippedConfigs, "deal", "--config", "nope"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newApp(&out).Run(context.Background(), append([]string{"analyze"}, tt.args...))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Expected %q in output:\n%s", tt.want, out.String())
			}
		})
	}
}
