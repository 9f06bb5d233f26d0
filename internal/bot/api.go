package bot

import "callbreak/internal/domain"

// mandatoryTrumping mirrors the session's trick-play policy. Brains must
// compute their legal set exactly the way the session will validate it.
const mandatoryTrumping = false

// Brain is the interface all bot strategies implement.
type Brain interface {
	// Bid estimates how many tricks the hand can win, clamped to [1, maxBid].
	Bid(hand []domain.Card, maxBid int) int
	// Play selects a card from the player's legal set for the current trick.
	Play(game *domain.Game, player *domain.Player) (domain.Card, error)
	// OnEvent lets stateful brains observe session events.
	OnEvent(event any)
}
