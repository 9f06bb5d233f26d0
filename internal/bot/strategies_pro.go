package bot

import (
	"math"

	"callbreak/internal/app"
	botinternal "callbreak/internal/bot/internal"
	"callbreak/internal/bot/brain"
	"callbreak/internal/domain"
)

// ProBot is the difficulty-tiered strategy: it bids from a suit-grouped
// win-probability profile and plays with a memory of every card seen, so it
// knows when a card is the best one still out.
type ProBot struct {
	memory *brain.TrickMemory
}

// NewProBot creates a pro-tier brain with empty memory.
func NewProBot() *ProBot {
	return &ProBot{memory: brain.NewMemory()}
}

// Bid rounds the estimated trick expectancy of the hand.
func (b *ProBot) Bid(hand []domain.Card, maxBid int) int {
	return clampBid(int(math.Round(botinternal.EstimateTricks(hand))), maxBid)
}

// Play refines the baseline heuristic with boss-card knowledge: while tricks
// are still needed it cashes cards that nothing in an opponent hand can beat,
// and it avoids wasting them once the bid is safe.
func (b *ProBot) Play(game *domain.Game, player *domain.Player) (domain.Card, error) {
	valid := domain.ValidCards(player.Hand, game.LeadSuit, game.CurrentTrick, mandatoryTrumping)
	if len(valid) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}
	if len(valid) == 1 {
		return valid[0], nil
	}

	needsTricks := player.TricksWon < player.Bid

	if len(game.CurrentTrick) == 0 {
		if needsTricks {
			if boss, ok := b.bestBoss(valid); ok {
				return boss, nil
			}
			return bestLead(valid), nil
		}
		return lowestCard(valid), nil
	}

	winners := winningCards(valid, game.CurrentTrick, game.LeadSuit)
	lastToAct := len(game.CurrentTrick) == domain.NumPlayers-1

	if len(winners) > 0 && (lastToAct || needsTricks) {
		return lowestCard(winners), nil
	}
	return lowestCard(valid), nil
}

// bestBoss returns the highest card that no opponent can beat, preferring
// plain suits so trumps stay in reserve.
func (b *ProBot) bestBoss(valid []domain.Card) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range valid {
		if !b.memory.IsBoss(c) {
			continue
		}
		if !found || cardCost(c) > cardCost(best) {
			// Among bosses, prefer the plain-suit one with the most
			// opposing cards left to pull.
			if found && c.IsTrump() && !best.IsTrump() {
				continue
			}
			best = c
			found = true
		}
	}
	return best, found
}

// OnEvent keeps the card memory in sync with the session's event stream.
func (b *ProBot) OnEvent(event any) {
	switch e := event.(type) {
	case app.DealtPayload:
		b.memory.Reset()
	case app.HandDealtPayload:
		b.memory.ObserveHand(e.Hand)
	case app.CardPlayedPayload:
		b.memory.ObservePlay(e.UserID, e.Card, e.LeadSuit)
	}
}
