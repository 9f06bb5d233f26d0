package domain

import (
	"testing"
)

func TestCardID(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{Card{Suit: SuitSpades, Rank: RankAce}, "AS"},
		{Card{Suit: SuitHearts, Rank: 10}, "10H"},
		{Card{Suit: SuitDiamonds, Rank: 2}, "2D"},
		{Card{Suit: SuitClubs, Rank: RankQueen}, "QC"},
	}

	for _, tt := range tests {
		if got := tt.card.ID(); got != tt.expected {
			t.Errorf("ID(%v) = %q, want %q", tt.card, got, tt.expected)
		}
	}
}

func TestCardFromID(t *testing.T) {
	// Every canonical id must round-trip.
	for _, c := range NewDeck() {
		parsed, err := CardFromID(c.ID())
		if err != nil {
			t.Fatalf("CardFromID(%q) failed: %v", c.ID(), err)
		}
		if parsed != c {
			t.Errorf("CardFromID(%q) = %v, want %v", c.ID(), parsed, c)
		}
	}

	invalid := []string{"", "A", "AX", "1S", "11S", "0H", "ZZS"}
	for _, id := range invalid {
		if _, err := CardFromID(id); err == nil {
			t.Errorf("CardFromID(%q) expected error, got none", id)
		}
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		{Suit: SuitClubs, Rank: 3},
		{Suit: SuitSpades, Rank: 5},
		{Suit: SuitHearts, Rank: RankAce},
		{Suit: SuitSpades, Rank: RankKing},
		{Suit: SuitHearts, Rank: 2},
	}
	SortHand(hand)

	expected := []string{"KS", "5S", "AH", "2H", "3C"}
	for i, id := range expected {
		if hand[i].ID() != id {
			t.Fatalf("position %d = %s, want %s (hand %v)", i, hand[i].ID(), id, hand)
		}
	}
}

func TestRemoveCard(t *testing.T) {
	hand := []Card{
		{Suit: SuitSpades, Rank: RankAce},
		{Suit: SuitHearts, Rank: 7},
	}

	out, removed := RemoveCard(hand, Card{Suit: SuitHearts, Rank: 7})
	if !removed {
		t.Fatal("expected card to be removed")
	}
	if len(out) != 1 || out[0].ID() != "AS" {
		t.Errorf("unexpected remaining hand %v", out)
	}
	if len(hand) != 2 {
		t.Errorf("original hand mutated: %v", hand)
	}

	if _, removed := RemoveCard(hand, Card{Suit: SuitClubs, Rank: 2}); removed {
		t.Error("removed a card that was not in the hand")
	}
}
