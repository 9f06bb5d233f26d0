package domain

import (
	"errors"
	"math/rand"
)

const (
	// NumPlayers is fixed: Call Break is always a four-seat game.
	NumPlayers = 4
	// HandSize is the number of cards dealt to each seat per round.
	HandSize = 13
	// MaxDealAttempts bounds the constrained-deal retry loop.
	MaxDealAttempts = 100
)

// ErrDealingImpossible is returned when no constrained deal was found within
// MaxDealAttempts shuffles. With a full 52-card deck this should never happen
// in practice; callers must treat it as a fatal session fault.
var ErrDealingImpossible = errors.New("no valid deal found within attempt budget")

// NewDeck returns the 52 canonical cards, ordered by suit then rank.
func NewDeck() []Card {
	deck := make([]Card, 0, NumPlayers*HandSize)
	for _, s := range Suits {
		for r := 2; r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of the given deck. The caller's slice is
// never reordered in place.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealConstrained shuffles and partitions the deck into NumPlayers sorted
// hands of HandSize cards each. A deal is rejected and retried when any hand
// lacks a trump card, or, when requireFaceCard is set, when any hand lacks a
// jack or better.
func DealConstrained(rng *rand.Rand, deck []Card, requireFaceCard bool) ([][]Card, error) {
	for attempt := 0; attempt < MaxDealAttempts; attempt++ {
		shuffled := Shuffle(rng, deck)

		hands := make([][]Card, NumPlayers)
		for i := range hands {
			hands[i] = make([]Card, 0, HandSize)
		}
		for i, c := range shuffled {
			hands[i%NumPlayers] = append(hands[i%NumPlayers], c)
		}

		if !handsAcceptable(hands, requireFaceCard) {
			continue
		}

		for _, hand := range hands {
			SortHand(hand)
		}
		return hands, nil
	}
	return nil, ErrDealingImpossible
}

func handsAcceptable(hands [][]Card, requireFaceCard bool) bool {
	for _, hand := range hands {
		hasTrump := false
		hasFace := false
		for _, c := range hand {
			if c.IsTrump() {
				hasTrump = true
			}
			if c.IsFace() {
				hasFace = true
			}
		}
		if !hasTrump {
			return false
		}
		if requireFaceCard && !hasFace {
			return false
		}
	}
	return true
}
