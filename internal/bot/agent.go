package bot

import (
	"fmt"

	"callbreak/internal/domain"
)

// Agent represents an autonomous player occupying a seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Bid asks the agent for its bid for the current round.
func (a *Agent) Bid(game *domain.Game) (int, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return 0, fmt.Errorf("agent %s is not seated in this game", a.ID)
	}
	return a.Strategy.Bid(player.Hand, game.MaxBid), nil
}

// Play asks the agent to pick a card for the current trick.
func (a *Agent) Play(game *domain.Game) (domain.Card, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return domain.Card{}, fmt.Errorf("agent %s is not seated in this game", a.ID)
	}
	return a.Strategy.Play(game, player)
}

// OnGameEvent notifies the agent of a session event.
func (a *Agent) OnGameEvent(event any) {
	a.Strategy.OnEvent(event)
}
