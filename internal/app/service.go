package app

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"callbreak/internal/domain"
)

// Service contains the Call Break use-cases operating on a domain.Game.
// Every mutation of session state flows through these methods, whether the
// command came from a human client or the bot scheduler.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrWrongPhase    = errors.New("command not valid in current phase")
	ErrNotYourTurn   = errors.New("actor is not the current turn")
	ErrUnknownPlayer = errors.New("player not found")
	ErrTableFull     = errors.New("no free seat")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrIllegalCard   = errors.New("card violates follow-suit rules")
	ErrNotReadyYet   = errors.New("not all humans are ready")
)

// NewRoomCode draws a fresh room code from the service rng.
func (s *Service) NewRoomCode() string {
	return domain.NewRoomCode(s.rng)
}

// Ready marks a human player as ready to start.
func (s *Service) Ready(g *domain.Game, actorID string) ([]Event, error) {
	if g.Phase != domain.PhaseWaiting {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[actorID]
	if !ok || p.IsBot {
		return nil, ErrUnknownPlayer
	}
	p.IsReady = true
	return nil, nil
}

// AddBot seats an automated player. Bots are seated after existing humans and
// keep their identity for the whole match.
func (s *Service) AddBot(g *domain.Game, userID, name string) (*domain.Player, error) {
	if g.Phase != domain.PhaseWaiting {
		return nil, ErrWrongPhase
	}
	p := g.AddPlayer(userID, name, true)
	if p == nil {
		return nil, ErrTableFull
	}
	return p, nil
}

// StartDealing builds, shuffles and constrained-deals a fresh deck to the four
// seats, resets the round counters and selects the round's first bidder. The
// caller advances to bidding (BeginBidding) after the reveal delay.
func (s *Service) StartDealing(g *domain.Game) ([]Event, error) {
	switch g.Phase {
	case domain.PhaseWaiting:
		// Bot-only tables (self-play harness) have no ready flags to wait on.
		if g.HumanCount() > 0 && !g.AllHumansReady() {
			return nil, ErrNotReadyYet
		}
	case domain.PhaseRoundEnd:
	default:
		return nil, ErrWrongPhase
	}
	if len(g.PlayerOrder) != domain.NumPlayers {
		return nil, ErrNotReadyYet
	}

	hands, err := domain.DealConstrained(s.rng, domain.NewDeck(), true)
	if err != nil {
		return nil, err
	}

	g.Phase = domain.PhaseDealing
	g.TrickNumber = 0
	g.CurrentTrick = nil
	g.LeadSuit = ""
	g.TrickWinner = ""
	g.BiddingCursor = g.FirstBidderSeat()
	g.CurrentTurn = g.PlayerOrder[g.BiddingCursor]

	// The round announcement precedes the private hands so observers can
	// reset per-round state before the first hand arrives.
	events := make([]Event, 0, domain.NumPlayers+1)
	events = append(events, Event{
		Kind:    EventDealt,
		Payload: DealtPayload{Round: g.CurrentRound, FirstBidder: g.CurrentTurn},
	})
	for seat, id := range g.PlayerOrder {
		p := g.Players[id]
		p.Bid = 0
		p.TricksWon = 0
		p.RoundScore = 0
		p.Hand = hands[seat]

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: id, Hand: p.Hand},
			Recipients: []string{id},
		})
	}

	return events, nil
}

// BeginBidding moves the session from the deal-reveal pause into bidding.
func (s *Service) BeginBidding(g *domain.Game) ([]Event, error) {
	if g.Phase != domain.PhaseDealing {
		return nil, ErrWrongPhase
	}
	g.Phase = domain.PhaseBidding
	return []Event{{
		Kind:    EventBiddingStarted,
		Payload: BiddingStartedPayload{Round: g.CurrentRound, CurrentTurn: g.CurrentTurn},
	}}, nil
}

// PlaceBid accepts a bid from the seat currently expected to bid. The bid is
// clamped to [1, MaxBid]. Once all four seats have bid, play begins with the
// round's first bidder on lead.
func (s *Service) PlaceBid(g *domain.Game, actorID string, bid int) ([]Event, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.CurrentTurn != actorID {
		return nil, ErrNotYourTurn
	}

	if bid < 1 {
		bid = 1
	}
	if bid > g.MaxBid {
		bid = g.MaxBid
	}
	p.Bid = bid

	payload := BidPlacedPayload{UserID: actorID, Bid: bid}
	if g.AllBid() {
		g.Phase = domain.PhasePlaying
		g.CurrentTurn = g.PlayerOrder[g.FirstBidderSeat()]
		payload.AllBid = true
	} else {
		g.BiddingCursor = (g.BiddingCursor + 1) % domain.NumPlayers
		g.CurrentTurn = g.PlayerOrder[g.BiddingCursor]
	}
	payload.NextTurn = g.CurrentTurn

	return []Event{{Kind: EventBidPlaced, Payload: payload}}, nil
}

// PlayCard accepts a card from the player on turn, enforcing follow-suit
// rules. The fourth card resolves the trick immediately; the caller clears it
// (FinishTrick) after the trick-end pause.
func (s *Service) PlayCard(g *domain.Game, actorID string, card domain.Card) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.CurrentTurn != actorID {
		return nil, ErrNotYourTurn
	}

	hand, removed := domain.RemoveCard(p.Hand, card)
	if !removed {
		return nil, ErrCardNotInHand
	}
	if !cardAllowed(p.Hand, g.LeadSuit, g.CurrentTrick, card) {
		return nil, ErrIllegalCard
	}

	if len(g.CurrentTrick) == 0 {
		g.LeadSuit = card.Suit
	}
	g.CurrentTrick = append(g.CurrentTrick, domain.TrickEntry{PlayerID: actorID, Card: card})
	p.Hand = hand

	payload := CardPlayedPayload{UserID: actorID, Card: card, LeadSuit: g.LeadSuit}
	events := []Event{{Kind: EventCardPlayed, Payload: payload}}

	if len(g.CurrentTrick) == domain.NumPlayers {
		g.Phase = domain.PhaseTrickEnd
		winnerID := domain.FindTrickWinner(g.CurrentTrick, g.LeadSuit)
		g.TrickWinner = winnerID
		g.Players[winnerID].TricksWon++

		payload.TrickComplete = true
		events[0].Payload = payload
		events = append(events, Event{
			Kind:    EventTrickEnded,
			Payload: TrickEndedPayload{WinnerID: winnerID, TrickNumber: g.TrickNumber},
		})
		return events, nil
	}

	g.CurrentTurn = g.NextAfter(actorID)
	payload.NextTurn = g.CurrentTurn
	events[0].Payload = payload
	return events, nil
}

// cardAllowed checks the card against the legal set for this hand state.
// hand is the full hand before removal.
func cardAllowed(hand []domain.Card, leadSuit domain.Suit, trick []domain.TrickEntry, card domain.Card) bool {
	for _, c := range domain.ValidCards(hand, leadSuit, trick, MandatoryTrumping) {
		if c == card {
			return true
		}
	}
	return false
}

// FinishTrick clears a resolved trick after the trick-end pause. The winner
// leads the next trick; the 13th trick closes the round and applies scores.
func (s *Service) FinishTrick(g *domain.Game) ([]Event, error) {
	if g.Phase != domain.PhaseTrickEnd {
		return nil, ErrWrongPhase
	}

	g.CurrentTrick = nil
	g.LeadSuit = ""
	g.TrickNumber++

	if g.TrickNumber < domain.HandSize {
		g.Phase = domain.PhasePlaying
		g.CurrentTurn = g.TrickWinner
		return nil, nil
	}

	g.Phase = domain.PhaseRoundEnd
	results := make([]RoundResult, 0, domain.NumPlayers)
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		p.RoundScore = domain.RoundScore(p.Bid, p.TricksWon)
		p.Score += p.RoundScore
		results = append(results, RoundResult{
			UserID:     id,
			Bid:        p.Bid,
			TricksWon:  p.TricksWon,
			RoundScore: p.RoundScore,
			TotalScore: p.Score,
		})
	}

	return []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Round:     g.CurrentRound,
			Results:   results,
			LastRound: g.CurrentRound >= g.TotalRounds,
		},
	}}, nil
}

// NextRound advances past a round summary: either into the next deal or, after
// the final round, into game over with the gold settlement computed from the
// final standings. baseStake is the per-seat stake contributed to the pot.
func (s *Service) NextRound(g *domain.Game, actorID string, baseStake int64) ([]Event, error) {
	if g.Phase != domain.PhaseRoundEnd {
		return nil, ErrWrongPhase
	}
	if _, ok := g.Players[actorID]; !ok {
		return nil, ErrUnknownPlayer
	}

	if g.CurrentRound >= g.TotalRounds {
		g.Phase = domain.PhaseGameOver
		g.CurrentTurn = ""
		standings := finalStandings(g)
		return []Event{{
			Kind: EventGameOver,
			Payload: GameOverPayload{
				Standings:      standings,
				BalanceChanges: settle(standings, baseStake),
			},
		}}, nil
	}

	g.CurrentRound++
	return s.StartDealing(g)
}

func finalStandings(g *domain.Game) []RoundResult {
	standings := make([]RoundResult, 0, len(g.PlayerOrder))
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		standings = append(standings, RoundResult{
			UserID:     id,
			Bid:        p.Bid,
			TricksWon:  p.TricksWon,
			RoundScore: p.RoundScore,
			TotalScore: p.Score,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})
	return standings
}

// settle computes winner-takes-pot gold deltas: every other seat pays the
// stake, the top seat collects it.
func settle(standings []RoundResult, baseStake int64) map[string]int64 {
	if baseStake <= 0 || len(standings) == 0 {
		return nil
	}
	changes := make(map[string]int64, len(standings))
	for i, line := range standings {
		if i == 0 {
			changes[line.UserID] = baseStake * int64(len(standings)-1)
			continue
		}
		changes[line.UserID] = -baseStake
	}
	return changes
}

// Restart returns the session to the waiting phase: bot seats are removed,
// human ready flags cleared and all counters reset. Valid from any phase.
func (s *Service) Restart(g *domain.Game, actorID string) ([]Event, error) {
	p, ok := g.Players[actorID]
	if !ok || p.IsBot {
		return nil, ErrUnknownPlayer
	}

	for _, id := range append([]string{}, g.PlayerOrder...) {
		if g.Players[id].IsBot {
			g.RemovePlayer(id)
		}
	}
	for _, pl := range g.Players {
		pl.IsReady = false
		pl.Bid = 0
		pl.TricksWon = 0
		pl.Score = 0
		pl.RoundScore = 0
		pl.Hand = nil
	}

	g.Phase = domain.PhaseWaiting
	g.CurrentRound = 1
	g.TrickNumber = 0
	g.CurrentTrick = nil
	g.LeadSuit = ""
	g.TrickWinner = ""
	g.CurrentTurn = ""
	g.BiddingCursor = 0

	return []Event{{
		Kind:    EventMatchRestarted,
		Payload: MatchRestartedPayload{RoomCode: g.RoomCode},
	}}, nil
}

// Join seats a human player. Seat assignment order is join order; the seat
// index stays stable for the whole match.
func (s *Service) Join(g *domain.Game, userID, name string) ([]Event, error) {
	p := g.AddPlayer(userID, name, false)
	if p == nil {
		return nil, ErrTableFull
	}
	return []Event{
		{
			Kind:       EventSeated,
			Payload:    SeatedPayload{UserID: userID, Seat: p.Seat, RoomCode: g.RoomCode},
			Recipients: []string{userID},
		},
		{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{UserID: userID, Name: name, Seat: p.Seat},
		},
	}, nil
}

// MarkDisconnected flags an unexpected drop. The seat and hand stay intact
// while the reconnection window is open.
func (s *Service) MarkDisconnected(g *domain.Game, userID string) error {
	p, ok := g.Players[userID]
	if !ok {
		return ErrUnknownPlayer
	}
	p.IsConnected = false
	return nil
}

// Reconnect restores a dropped player inside the reconnection window. Their
// hand, scores and turn position are untouched.
func (s *Service) Reconnect(g *domain.Game, userID string) ([]Event, error) {
	p, ok := g.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	p.IsConnected = true
	return []Event{
		{
			Kind:       EventReconnected,
			Payload:    ReconnectedPayload{RoomCode: g.RoomCode},
			Recipients: []string{userID},
		},
		{
			Kind:    EventPlayerReconnected,
			Payload: PlayerReconnectedPayload{UserID: userID, Name: p.Name},
		},
	}, nil
}

// Depart frees a seat outside active play, either on a consented leave or
// when the reconnection window elapsed. The turn ring is compacted, which is
// only safe while no round is running; mid-match departures go through
// ReplaceWithBot instead.
func (s *Service) Depart(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase != domain.PhaseWaiting && g.Phase != domain.PhaseGameOver {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	name := p.Name
	g.RemovePlayer(userID)

	return []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{UserID: userID, Name: name},
	}}, nil
}

// ReplaceWithBot hands a departing player's seat to a bot mid-match. The bot
// inherits the seat index, hand, bid, tricks and scores, so the bidding
// cursor, the current trick and the 13-trick accounting keep four live seats.
func (s *Service) ReplaceWithBot(g *domain.Game, userID, botID, botName string) ([]Event, error) {
	p, ok := g.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	name := p.Name
	seat := g.ReplacePlayer(userID, botID, botName)
	if seat == nil {
		return nil, ErrUnknownPlayer
	}

	return []Event{
		{
			Kind:    EventPlayerLeft,
			Payload: PlayerLeftPayload{UserID: userID, Name: name},
		},
		{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{UserID: botID, Name: botName, Seat: seat.Seat, IsBot: true},
		},
	}, nil
}
