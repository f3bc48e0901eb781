package engine

import (
	"reflect"
	"testing"
)

func TestPopSuffixFrom(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantMoved int
		wantLeft  int
	}{
		{"whole pile", 0, 3, 0},
		{"top two", 1, 2, 1},
		{"top only", 2, 1, 2},
		{"past the end", 3, 0, 3},
		{"negative", -1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pile{up(King, Spades), up(Queen, Hearts), up(Jack, Clubs)}
			moved := p.PopSuffixFrom(tt.index)
			if len(moved) != tt.wantMoved {
				t.Errorf("Expected %d moved, got %d", tt.wantMoved, len(moved))
			}
			if len(p) != tt.wantLeft {
				t.Errorf("Expected %d left, got %d", tt.wantLeft, len(p))
			}
			if tt.wantMoved > 0 && !moved[0].SameCard([]Card{up(King, Spades), up(Queen, Hearts), up(Jack, Clubs)}[tt.index]) {
				t.Errorf("Moved run starts with %s", moved[0])
			}
		})
	}
}

func TestPopSuffixDetachesFromBacking(t *testing.T) {
	p := Pile{up(King, Spades), up(Queen, Hearts)}
	moved := p.PopSuffixFrom(1)
	p.PushRun([]Card{up(Queen, Diamonds)})
	if !moved[0].SameCard(up(Queen, Hearts)) {
		t.Errorf("Moved run changed after pile reuse: %s", moved[0])
	}
}

func TestFlipTop(t *testing.T) {
	p := Pile{down(Five, Clubs), down(Six, Hearts)}
	if !p.FlipTop() {
		t.Fatal("Expected face-down top to flip")
	}
	if !p[1].FaceUp || p[0].FaceUp {
		t.Error("Only the top card should flip")
	}
	if p.FlipTop() {
		t.Error("Face-up top should not flip again")
	}
	if (Pile{}).FlipTop() {
		t.Error("Empty pile cannot flip")
	}
}

func TestFaceUpStart(t *testing.T) {
	tests := []struct {
		pile Pile
		want int
	}{
		{Pile{}, 0},
		{Pile{down(Two, Clubs)}, 1},
		{Pile{down(Two, Clubs), up(Nine, Hearts), up(Eight, Spades)}, 1},
		{Pile{up(King, Spades)}, 0},
	}
	for _, tt := range tests {
		if got := tt.pile.FaceUpStart(); got != tt.want {
			t.Errorf("FaceUpStart(%v) = %d, want %d", tt.pile, got, tt.want)
		}
	}
}

func TestBoardCloneIsDeep(t *testing.T) {
	b := fixtureBoard()
	b.Stock = nil
	c := b.Clone()

	if !reflect.DeepEqual(b, c) {
		t.Fatal("Clone should equal the original")
	}
	if c.Stock != nil {
		t.Error("Clone should keep nil piles nil")
	}

	c.Tableau[0][1].FaceUp = false
	c.Foundations[0].Cards = append(c.Foundations[0].Cards, up(Ace, Hearts))
	if !b.Tableau[0][1].FaceUp || b.Foundations[0].Len() != 0 {
		t.Error("Mutating the clone changed the original")
	}
}

func TestRecycleWaste(t *testing.T) {
	stock := Pile{}
	waste := Pile{up(Two, Clubs), up(Nine, Hearts), up(Jack, Spades)}

	if !RecycleWaste(&stock, &waste) {
		t.Fatal("Expected recycle")
	}
	want := Pile{down(Jack, Spades), down(Nine, Hearts), down(Two, Clubs)}
	if !reflect.DeepEqual(stock, want) {
		t.Errorf("Expected stock %v, got %v", want, stock)
	}
	if waste == nil || len(waste) != 0 {
		t.Errorf("Expected empty waste, got %v", waste)
	}

	top, _ := stock.Top()
	if !top.SameCard(up(Two, Clubs)) {
		t.Errorf("Expected the first drawn card back on top, got %s", top)
	}

	if RecycleWaste(&stock, &waste) {
		t.Error("Non-empty stock must not recycle")
	}
}

func TestFoundationComplete(t *testing.T) {
	f := Foundation{Suit: Clubs}
	for _, r := range Ranks {
		if f.Complete() {
			t.Fatal("Incomplete foundation reported complete")
		}
		f.Cards = append(f.Cards, up(r, Clubs))
	}
	if !f.Complete() {
		t.Error("Expected A..K of clubs to be complete")
	}

	f.Cards[12] = up(King, Spades)
	if f.Complete() {
		t.Error("Wrong suit should not be complete")
	}
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *Board)
		wantErr bool
	}{
		{"fixture", func(b *Board) {}, false},
		{"missing card", func(b *Board) { b.Stock = b.Stock[1:] }, true},
		{"duplicate card", func(b *Board) { b.Stock[0] = down(King, Spades) }, true},
		{"face-up stock", func(b *Board) { b.Stock[0].FaceUp = true }, true},
		{"malformed rank", func(b *Board) { b.Tableau[1][0].Rank = "1" }, true},
		{"swapped foundations", func(b *Board) { b.Foundations[0].Suit, b.Foundations[1].Suit = Diamonds, Hearts }, true},
		{"face-down waste", func(b *Board) { b.Waste[0].FaceUp = false }, true},
		{"hidden card inside a run", func(b *Board) { b.Tableau[3][2].FaceUp = false }, true},
		{"face-up card under a hidden one", func(b *Board) { b.Tableau[0][0].FaceUp, b.Tableau[0][1].FaceUp = true, false }, true},
		{"face-down foundation card", func(b *Board) {
			b.Tableau[5] = Pile{}
			b.Foundation(Hearts).Cards = Pile{down(Ace, Hearts)}
		}, true},
		{"fully hidden pile", func(b *Board) { b.Tableau[6][1].FaceUp = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fixtureBoard()
			tt.mutate(&b)
			err := b.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoardPile(t *testing.T) {
	b := fixtureBoard()
	if b.Pile(TableauRef(7)) != nil || b.Pile(TableauRef(-1)) != nil {
		t.Error("Out of range tableau should resolve to nil")
	}
	if b.Pile(FoundationRef("stars")) != nil {
		t.Error("Unknown suit should resolve to nil")
	}
	if p := b.Pile(WasteRef()); p == nil || len(*p) != 2 {
		t.Error("Expected waste pile")
	}
}
