package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Suit identifies one of the four French suits.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
)

// TrumpSuit is fixed for every Call Break match.
const TrumpSuit = SuitSpades

// Suits lists the suits in the fixed display order used when sorting hands.
var Suits = [4]Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Named ranks. Rank doubles as the comparison value: 2 low, ace high.
const (
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is an immutable playing card. Rank runs 2..14 with ace high.
type Card struct {
	Suit Suit
	Rank int
}

var rankSymbols = map[int]string{RankJack: "J", RankQueen: "Q", RankKing: "K", RankAce: "A"}

var symbolRanks = map[string]int{"J": RankJack, "Q": RankQueen, "K": RankKing, "A": RankAce}

// ID returns the canonical card identifier, e.g. "AS" or "10H".
// IDs are unique across the 52-card universe.
func (c Card) ID() string {
	if sym, ok := rankSymbols[c.Rank]; ok {
		return sym + string(c.Suit)
	}
	return fmt.Sprintf("%d%s", c.Rank, c.Suit)
}

// CardFromID parses a card identifier produced by Card.ID.
func CardFromID(id string) (Card, error) {
	if len(id) < 2 {
		return Card{}, fmt.Errorf("malformed card id %q", id)
	}
	suit := Suit(id[len(id)-1:])
	switch suit {
	case SuitSpades, SuitHearts, SuitDiamonds, SuitClubs:
	default:
		return Card{}, fmt.Errorf("unknown suit in card id %q", id)
	}

	sym := id[:len(id)-1]
	rank, ok := symbolRanks[strings.ToUpper(sym)]
	if !ok {
		n, err := strconv.Atoi(sym)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("unknown rank in card id %q", id)
		}
		rank = n
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// IsTrump reports whether the card belongs to the trump suit.
func (c Card) IsTrump() bool {
	return c.Suit == TrumpSuit
}

// IsFace reports whether the card is a jack or better.
func (c Card) IsFace() bool {
	return c.Rank >= RankJack
}

func suitOrder(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return len(Suits)
}

// SortHand orders a hand in place: spades, hearts, diamonds, clubs,
// rank descending within each suit.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Suit != b.Suit {
			return suitOrder(a.Suit) < suitOrder(b.Suit)
		}
		return a.Rank > b.Rank
	})
}

// RemoveCard returns the hand with a single card removed.
// The removed flag is false when the card was not in the hand.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			out := append([]Card{}, hand[:i]...)
			return append(out, hand[i+1:]...), true
		}
	}
	return hand, false
}
