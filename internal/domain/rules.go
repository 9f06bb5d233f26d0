package domain

// Comparison is the outcome of comparing two cards under trick rules.
type Comparison int

const (
	// FirstWins means the first card beats the second.
	FirstWins Comparison = iota
	// SecondWins means the second card beats the first.
	SecondWins
	// Incomparable means neither card can beat the other. This only occurs
	// between two different non-lead, non-trump suits.
	Incomparable
)

// CompareCards compares two cards given the suit led for the trick.
// Trump beats any non-trump; within a suit the higher rank wins; a lead-suit
// card beats any other non-trump suit.
func CompareCards(a, b Card, leadSuit Suit) Comparison {
	if a.Suit == b.Suit {
		if a.Rank > b.Rank {
			return FirstWins
		}
		return SecondWins
	}
	if a.IsTrump() {
		return FirstWins
	}
	if b.IsTrump() {
		return SecondWins
	}
	if a.Suit == leadSuit {
		return FirstWins
	}
	if b.Suit == leadSuit {
		return SecondWins
	}
	return Incomparable
}

// FindTrickWinner returns the player id that won the trick. The trick must be
// non-empty; ties cannot occur among 52 unique cards.
func FindTrickWinner(trick []TrickEntry, leadSuit Suit) string {
	best := trick[0]
	for _, e := range trick[1:] {
		if CompareCards(e.Card, best.Card, leadSuit) == FirstWins {
			best = e
		}
	}
	return best.PlayerID
}

// HighestInTrick returns the current best card of a non-empty trick.
func HighestInTrick(trick []TrickEntry, leadSuit Suit) Card {
	best := trick[0].Card
	for _, e := range trick[1:] {
		if CompareCards(e.Card, best, leadSuit) == FirstWins {
			best = e.Card
		}
	}
	return best
}

// ValidCards computes the legal subset of hand given the lead suit and the
// cards already on the table.
//
// Follow-suit rules: a player holding the lead suit must follow, and must
// overtake the current best card when able. A player void in the lead suit
// must win with a trump when one of their trumps can; holding only losing
// trumps, they must still play a trump when mandatoryTrumping is set,
// otherwise anything goes (the overtake exception).
func ValidCards(hand []Card, leadSuit Suit, trick []TrickEntry, mandatoryTrumping bool) []Card {
	if leadSuit == "" || len(trick) == 0 {
		return append([]Card{}, hand...)
	}

	highest := HighestInTrick(trick, leadSuit)

	var followers, trumps []Card
	for _, c := range hand {
		if c.Suit == leadSuit {
			followers = append(followers, c)
		}
		if c.IsTrump() {
			trumps = append(trumps, c)
		}
	}

	if len(followers) > 0 {
		var winners []Card
		for _, c := range followers {
			if CompareCards(c, highest, leadSuit) == FirstWins {
				winners = append(winners, c)
			}
		}
		if len(winners) > 0 {
			return winners
		}
		return followers
	}

	if len(trumps) > 0 {
		var higher []Card
		for _, c := range trumps {
			if CompareCards(c, highest, leadSuit) == FirstWins {
				higher = append(higher, c)
			}
		}
		if len(higher) > 0 {
			return higher
		}
		if mandatoryTrumping {
			return trumps
		}
	}

	return append([]Card{}, hand...)
}
