package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("deck has %d cards, want 52", len(deck))
	}

	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %s", c.ID())
		}
		seen[c] = true
		if c.Rank < 2 || c.Rank > RankAce {
			t.Errorf("card %s has rank out of range", c.ID())
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := NewDeck()
	original := make([]Card, len(deck))
	copy(original, deck)

	rng := rand.New(rand.NewSource(7))
	shuffled := Shuffle(rng, deck)

	for i := range deck {
		if deck[i] != original[i] {
			t.Fatal("input deck was reordered in place")
		}
	}

	seen := make(map[Card]bool, 52)
	for _, c := range shuffled {
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("shuffle lost cards: %d unique, want 52", len(seen))
	}
}

func TestDealConstrained(t *testing.T) {
	deck := NewDeck()

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		hands, err := DealConstrained(rng, deck, true)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(hands) != NumPlayers {
			t.Fatalf("seed %d: got %d hands, want %d", seed, len(hands), NumPlayers)
		}

		seen := make(map[Card]bool, 52)
		for seat, hand := range hands {
			if len(hand) != HandSize {
				t.Fatalf("seed %d seat %d: %d cards, want %d", seed, seat, len(hand), HandSize)
			}

			hasTrump, hasFace := false, false
			for _, c := range hand {
				if seen[c] {
					t.Fatalf("seed %d: card %s dealt twice", seed, c.ID())
				}
				seen[c] = true
				if c.IsTrump() {
					hasTrump = true
				}
				if c.IsFace() {
					hasFace = true
				}
			}
			if !hasTrump {
				t.Errorf("seed %d seat %d: no trump card", seed, seat)
			}
			if !hasFace {
				t.Errorf("seed %d seat %d: no face card", seed, seat)
			}

			// Hands come back sorted for display.
			for i := 1; i < len(hand); i++ {
				a, b := hand[i-1], hand[i]
				if a.Suit == b.Suit && a.Rank < b.Rank {
					t.Errorf("seed %d seat %d: hand not sorted at %d", seed, seat, i)
				}
			}
		}
	}
}

func TestDealConstrainedDeterministic(t *testing.T) {
	deck := NewDeck()
	a, err := DealConstrained(rand.New(rand.NewSource(42)), deck, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DealConstrained(rand.New(rand.NewSource(42)), deck, true)
	if err != nil {
		t.Fatal(err)
	}

	for seat := range a {
		for i := range a[seat] {
			if a[seat][i] != b[seat][i] {
				t.Fatalf("same seed produced different deals at seat %d", seat)
			}
		}
	}
}
