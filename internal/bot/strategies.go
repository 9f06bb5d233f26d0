package bot

import (
	"errors"
	"math"

	"callbreak/internal/domain"
)

// ErrNoLegalCard is returned when a brain is asked to play from an empty
// legal set, which indicates a session bug rather than a strategy failure.
var ErrNoLegalCard = errors.New("no legal card to play")

// StandardBot is the baseline heuristic used by casual-tier bots.
type StandardBot struct{}

// Bid counts sure winners: aces are a trick, kings half a trick, the trump
// queen half, and remaining high trumps a third each.
func (b *StandardBot) Bid(hand []domain.Card, maxBid int) int {
	estimate := 1.0
	for _, c := range hand {
		switch {
		case c.Rank == domain.RankAce:
			estimate += 1.0
		case c.Rank == domain.RankKing:
			estimate += 0.5
		case c.IsTrump() && c.Rank == domain.RankQueen:
			estimate += 0.5
		case c.IsTrump() && c.Rank >= 10:
			estimate += 0.3
		}
	}
	return clampBid(int(math.Round(estimate)), maxBid)
}

// Play implements the baseline move selection: lead the highest plain card,
// win as cheaply as possible when a trick is still needed, dump the lowest
// card otherwise.
func (b *StandardBot) Play(game *domain.Game, player *domain.Player) (domain.Card, error) {
	valid := domain.ValidCards(player.Hand, game.LeadSuit, game.CurrentTrick, mandatoryTrumping)
	if len(valid) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}
	if len(valid) == 1 {
		return valid[0], nil
	}

	if len(game.CurrentTrick) == 0 {
		return bestLead(valid), nil
	}

	winners := winningCards(valid, game.CurrentTrick, game.LeadSuit)
	lastToAct := len(game.CurrentTrick) == domain.NumPlayers-1

	if len(winners) > 0 && (lastToAct || player.TricksWon < player.Bid) {
		return lowestCard(winners), nil
	}
	return lowestCard(valid), nil
}

func (b *StandardBot) OnEvent(event any) {}

// bestLead prefers the highest non-trump card, falling back to the highest
// trump for an all-spade hand.
func bestLead(valid []domain.Card) domain.Card {
	var best domain.Card
	found := false
	for _, c := range valid {
		if c.IsTrump() {
			continue
		}
		if !found || c.Rank > best.Rank {
			best = c
			found = true
		}
	}
	if found {
		return best
	}
	return highestCard(valid)
}

// winningCards filters the legal set down to cards beating the current best.
func winningCards(valid []domain.Card, trick []domain.TrickEntry, leadSuit domain.Suit) []domain.Card {
	highest := domain.HighestInTrick(trick, leadSuit)
	var winners []domain.Card
	for _, c := range valid {
		if domain.CompareCards(c, highest, leadSuit) == domain.FirstWins {
			winners = append(winners, c)
		}
	}
	return winners
}

// lowestCard picks the cheapest card, spending trumps only when nothing
// plainer is on offer.
func lowestCard(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cardCost(c) < cardCost(best) {
			best = c
		}
	}
	return best
}

func highestCard(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}

// cardCost orders cards for dumping: rank first, trumps counted as more
// expensive than any plain card of the same rank.
func cardCost(c domain.Card) int {
	cost := c.Rank
	if c.IsTrump() {
		cost += domain.RankAce
	}
	return cost
}

func clampBid(bid, maxBid int) int {
	if bid < 1 {
		return 1
	}
	if bid > maxBid {
		return maxBid
	}
	return bid
}
