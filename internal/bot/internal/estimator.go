package internal

import "callbreak/internal/domain"

// SuitProfile summarizes one suit's holding for trick estimation.
type SuitProfile struct {
	Suit   domain.Suit
	Cards  []domain.Card // rank descending
	Length int
}

// ProfileHand groups a hand by suit, each group sorted rank descending.
func ProfileHand(hand []domain.Card) []SuitProfile {
	profiles := make([]SuitProfile, 0, len(domain.Suits))
	for _, s := range domain.Suits {
		var cards []domain.Card
		for _, c := range hand {
			if c.Suit == s {
				cards = append(cards, c)
			}
		}
		domain.SortHand(cards)
		profiles = append(profiles, SuitProfile{Suit: s, Cards: cards, Length: len(cards)})
	}
	return profiles
}

// winProbability assigns a per-card trick expectancy. High trumps are near
// certainties; plain-suit honors degrade with depth because they risk being
// trumped in long suits or beaten by higher honors.
func winProbability(c domain.Card, depth, suitLen int) float64 {
	if c.IsTrump() {
		switch c.Rank {
		case domain.RankAce:
			return 1.0
		case domain.RankKing:
			return 0.9
		case domain.RankQueen:
			return 0.75
		case domain.RankJack:
			return 0.55
		default:
			if c.Rank >= 9 {
				return 0.35
			}
			return 0.15
		}
	}

	var base float64
	switch c.Rank {
	case domain.RankAce:
		base = 0.85
	case domain.RankKing:
		base = 0.6
	case domain.RankQueen:
		base = 0.3
	default:
		return 0
	}

	// Honors behind other cards in the same suit cash less often, and long
	// suits get ruffed.
	base -= 0.1 * float64(depth)
	if suitLen > 5 {
		base -= 0.15
	}
	if base < 0 {
		base = 0
	}
	return base
}

// EstimateTricks sums per-card win probabilities over the suit-grouped hand.
// Short plain suits add a small ruffing bonus when trumps are spare.
func EstimateTricks(hand []domain.Card) float64 {
	profiles := ProfileHand(hand)

	trumpCount := 0
	for _, p := range profiles {
		if p.Suit == domain.TrumpSuit {
			trumpCount = p.Length
		}
	}

	total := 0.0
	spareTrumps := trumpCount
	for _, p := range profiles {
		for depth, c := range p.Cards {
			total += winProbability(c, depth, p.Length)
		}
		if p.Suit != domain.TrumpSuit && p.Length <= 1 && spareTrumps > 3 {
			total += 0.5
			spareTrumps--
		}
	}
	return total
}
