package app

import "callbreak/internal/domain"

// EventKind identifies emitted session events for transport dispatch.
type EventKind string

const (
	EventSeated            EventKind = "seated"
	EventPlayerJoined      EventKind = "player_joined"
	EventPlayerLeft        EventKind = "player_left"
	EventPlayerReconnected EventKind = "player_reconnected"
	EventReconnected       EventKind = "reconnected"
	EventDealt             EventKind = "dealt"
	EventHandDealt         EventKind = "hand_dealt"
	EventBiddingStarted    EventKind = "bidding_started"
	EventBidPlaced         EventKind = "bid_placed"
	EventCardPlayed        EventKind = "card_played"
	EventTrickEnded        EventKind = "trick_ended"
	EventRoundEnded        EventKind = "round_ended"
	EventGameOver          EventKind = "game_over"
	EventMatchRestarted    EventKind = "match_restarted"
)

// Event is a session event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type SeatedPayload struct {
	UserID   string
	Seat     int
	RoomCode string
}

type PlayerJoinedPayload struct {
	UserID string
	Name   string
	Seat   int
	IsBot  bool
}

type PlayerLeftPayload struct {
	UserID string
	Name   string
}

type PlayerReconnectedPayload struct {
	UserID string
	Name   string
}

type ReconnectedPayload struct {
	RoomCode string
}

type DealtPayload struct {
	Round       int
	FirstBidder string
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type BiddingStartedPayload struct {
	Round       int
	CurrentTurn string
}

type BidPlacedPayload struct {
	UserID   string
	Bid      int
	NextTurn string
	// AllBid is true when this bid completed the auction and play begins.
	AllBid bool
}

type CardPlayedPayload struct {
	UserID   string
	Card     domain.Card
	LeadSuit domain.Suit
	NextTurn string
	// TrickComplete is true when this was the fourth card of the trick.
	TrickComplete bool
}

type TrickEndedPayload struct {
	WinnerID    string
	TrickNumber int // 0-based index of the trick just resolved
}

// RoundResult is one player's line in a round-end summary.
type RoundResult struct {
	UserID     string
	Bid        int
	TricksWon  int
	RoundScore float64
	TotalScore float64
}

type RoundEndedPayload struct {
	Round     int
	Results   []RoundResult
	LastRound bool
}

type GameOverPayload struct {
	// Standings lists user IDs ordered by final cumulative score, best first.
	Standings []RoundResult
	// BalanceChanges holds the gold settlement per user id, bots included;
	// the transport layer decides whose wallets actually exist.
	BalanceChanges map[string]int64
}

type MatchRestartedPayload struct {
	RoomCode string
}
