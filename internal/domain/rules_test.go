package domain

import (
	"testing"
)

func card(t *testing.T, id string) Card {
	t.Helper()
	c, err := CardFromID(id)
	if err != nil {
		t.Fatalf("bad card id %q: %v", id, err)
	}
	return c
}

func cards(t *testing.T, ids ...string) []Card {
	t.Helper()
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, card(t, id))
	}
	return out
}

func trickOf(t *testing.T, ids ...string) []TrickEntry {
	t.Helper()
	out := make([]TrickEntry, 0, len(ids))
	for i, id := range ids {
		out = append(out, TrickEntry{PlayerID: string(rune('a' + i)), Card: card(t, id)})
	}
	return out
}

func TestCompareCards(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		leadSuit Suit
		expected Comparison
	}{
		{"higher rank wins same suit", "KH", "QH", SuitHearts, FirstWins},
		{"lower rank loses same suit", "3D", "9D", SuitHearts, SecondWins},
		{"trump beats lead suit", "2S", "AH", SuitHearts, FirstWins},
		{"lead suit loses to trump", "AH", "2S", SuitHearts, SecondWins},
		{"lead suit beats offsuit", "4H", "AD", SuitHearts, FirstWins},
		{"offsuit loses to lead suit", "AD", "4H", SuitHearts, SecondWins},
		{"two offsuits are incomparable", "AD", "KC", SuitHearts, Incomparable},
		{"trump rank decides all-trump trick", "QS", "JS", SuitSpades, FirstWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareCards(card(t, tt.a), card(t, tt.b), tt.leadSuit)
			if got != tt.expected {
				t.Errorf("CompareCards(%s, %s, %s) = %v, want %v", tt.a, tt.b, tt.leadSuit, got, tt.expected)
			}
		})
	}
}

func TestFindTrickWinner(t *testing.T) {
	tests := []struct {
		name     string
		trick    []string
		leadSuit Suit
		winner   int // index into trick
	}{
		{"highest of lead suit wins", []string{"9H", "KH", "4H", "QH"}, SuitHearts, 1},
		{"lone trump wins", []string{"AH", "KH", "2S", "QH"}, SuitHearts, 2},
		{"highest trump wins when several", []string{"AH", "3S", "9S", "5S"}, SuitHearts, 2},
		{"offsuit never wins", []string{"6D", "AC", "KC", "2D"}, SuitDiamonds, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := trickOf(t, tt.trick...)
			got := FindTrickWinner(trick, tt.leadSuit)
			want := trick[tt.winner].PlayerID
			if got != want {
				t.Errorf("winner = %s, want %s (trick %v)", got, want, tt.trick)
			}
		})
	}
}

func TestValidCards(t *testing.T) {
	tests := []struct {
		name      string
		hand      []string
		leadSuit  Suit
		trick     []string
		mandatory bool
		expected  []string
	}{
		{
			name:     "leading allows anything",
			hand:     []string{"AS", "4H", "9C"},
			leadSuit: "",
			expected: []string{"AS", "4H", "9C"},
		},
		{
			name:     "must overtake when following suit",
			hand:     []string{"KH", "8H", "2C"},
			leadSuit: SuitHearts,
			trick:    []string{"QH"},
			expected: []string{"KH"},
		},
		{
			name:     "all followers legal when none can win",
			hand:     []string{"JH", "8H", "2C"},
			leadSuit: SuitHearts,
			trick:    []string{"QH"},
			expected: []string{"JH", "8H"},
		},
		{
			name:     "cannot overtake trumped trick with lead suit",
			hand:     []string{"AH", "3H"},
			leadSuit: SuitHearts,
			trick:    []string{"KH", "2S"},
			expected: []string{"AH", "3H"},
		},
		{
			name:     "void must win with trump when able",
			hand:     []string{"9S", "2S", "4D"},
			leadSuit: SuitHearts,
			trick:    []string{"AH", "5S"},
			expected: []string{"9S"},
		},
		{
			name:     "void with only losing trumps is free",
			hand:     []string{"5S", "2D", "3C"},
			leadSuit: SuitHearts,
			trick:    []string{"AH", "KS"},
			expected: []string{"5S", "2D", "3C"},
		},
		{
			name:      "mandatory trumping forces a losing trump",
			hand:      []string{"5S", "2D", "3C"},
			leadSuit:  SuitHearts,
			trick:     []string{"AH", "KS"},
			mandatory: true,
			expected:  []string{"5S"},
		},
		{
			name:     "void with no trumps plays anything",
			hand:     []string{"2D", "3C"},
			leadSuit: SuitHearts,
			trick:    []string{"AH"},
			expected: []string{"2D", "3C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidCards(cards(t, tt.hand...), tt.leadSuit, trickOf(t, tt.trick...), tt.mandatory)

			if len(got) != len(tt.expected) {
				t.Fatalf("got %d legal cards %v, want %v", len(got), got, tt.expected)
			}
			for i, id := range tt.expected {
				if got[i].ID() != id {
					t.Errorf("legal[%d] = %s, want %s", i, got[i].ID(), id)
				}
			}
		})
	}
}

func TestValidCardsNeverEmpty(t *testing.T) {
	// Whatever the table looks like, a non-empty hand always has a legal play.
	hand := cards(t, "7D", "3C")
	trick := trickOf(t, "AH", "KS", "QH")
	got := ValidCards(hand, SuitHearts, trick, false)
	if len(got) == 0 {
		t.Fatal("no legal cards for a non-empty hand")
	}
}
