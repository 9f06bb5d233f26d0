package brain

import "callbreak/internal/domain"

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // somewhere in an opponent's hand
	StatusMine                      // in the bot's own hand
	StatusPlayed                    // already on the table this round
)

// TrickMemory is a bot's private view of the round: which of the 52 cards
// are gone, which it holds, and which opponents have shown voids.
type TrickMemory struct {
	status [52]CardStatus
	voids  map[string]map[domain.Suit]bool // player id -> suits shown void
}

// NewMemory initializes a fresh memory state.
func NewMemory() *TrickMemory {
	return &TrickMemory{voids: make(map[string]map[domain.Suit]bool)}
}

// Reset clears the memory for a new round.
func (m *TrickMemory) Reset() {
	m.status = [52]CardStatus{}
	m.voids = make(map[string]map[domain.Suit]bool)
}

// ObserveHand records the bot's own dealt hand.
func (m *TrickMemory) ObserveHand(hand []domain.Card) {
	for i, st := range m.status {
		if st == StatusMine {
			m.status[i] = StatusUnknown
		}
	}
	for _, c := range hand {
		m.status[cardIndex(c)] = StatusMine
	}
}

// ObservePlay records a card played by any seat, including a void inference
// when the player could not follow the lead suit.
func (m *TrickMemory) ObservePlay(playerID string, card domain.Card, leadSuit domain.Suit) {
	m.status[cardIndex(card)] = StatusPlayed
	if leadSuit != "" && card.Suit != leadSuit {
		m.MarkVoid(playerID, leadSuit)
	}
}

// MarkVoid records that a player has no cards left in a suit.
func (m *TrickMemory) MarkVoid(playerID string, suit domain.Suit) {
	if m.voids[playerID] == nil {
		m.voids[playerID] = make(map[domain.Suit]bool)
	}
	m.voids[playerID][suit] = true
}

// IsVoid reports whether a player has shown a void in the given suit.
func (m *TrickMemory) IsVoid(playerID string, suit domain.Suit) bool {
	return m.voids[playerID][suit]
}

// IsPlayed reports whether a card is already out of the round.
func (m *TrickMemory) IsPlayed(c domain.Card) bool {
	return m.status[cardIndex(c)] == StatusPlayed
}

// IsBoss reports whether no higher card of the same suit remains in an
// opponent's hand.
func (m *TrickMemory) IsBoss(c domain.Card) bool {
	for rank := c.Rank + 1; rank <= domain.RankAce; rank++ {
		if m.status[cardIndex(domain.Card{Suit: c.Suit, Rank: rank})] == StatusUnknown {
			return false
		}
	}
	return true
}

// RemainingInSuit counts cards of a suit not yet seen and not held by the bot.
func (m *TrickMemory) RemainingInSuit(s domain.Suit) int {
	n := 0
	for rank := 2; rank <= domain.RankAce; rank++ {
		if m.status[cardIndex(domain.Card{Suit: s, Rank: rank})] == StatusUnknown {
			n++
		}
	}
	return n
}

// cardIndex maps a card to a stable 0..51 slot.
func cardIndex(c domain.Card) int {
	order := 0
	switch c.Suit {
	case domain.SuitSpades:
		order = 0
	case domain.SuitHearts:
		order = 1
	case domain.SuitDiamonds:
		order = 2
	case domain.SuitClubs:
		order = 3
	}
	return order*domain.HandSize + c.Rank - 2
}
