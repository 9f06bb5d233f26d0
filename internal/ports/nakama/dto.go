package nakama

import (
	"callbreak/internal/app"
	"callbreak/internal/domain"
)

// Client -> server payloads.

type bidRequest struct {
	Bid int `json:"bid"`
}

type playCardRequest struct {
	CardID string `json:"card_id"`
}

// Server -> client payloads.

type cardDTO struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

func toCardDTO(c domain.Card) cardDTO {
	return cardDTO{ID: c.ID(), Suit: string(c.Suit), Rank: c.Rank}
}

func toCardDTOs(cards []domain.Card) []cardDTO {
	out := make([]cardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardDTO(c))
	}
	return out
}

type trickEntryDTO struct {
	UserID string  `json:"user_id"`
	Card   cardDTO `json:"card"`
}

// playerDTO is the public view of a seat: hands are counted, never shown.
type playerDTO struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Seat           int     `json:"seat"`
	IsBot          bool    `json:"is_bot"`
	IsConnected    bool    `json:"is_connected"`
	IsReady        bool    `json:"is_ready"`
	Bid            int     `json:"bid"`
	TricksWon      int     `json:"tricks_won"`
	Score          float64 `json:"score"`
	RoundScore     float64 `json:"round_score"`
	CardsRemaining int     `json:"cards_remaining"`
}

// stateSyncDTO is the full public snapshot broadcast after every accepted
// command; the client-side store converges on it.
type stateSyncDTO struct {
	RoomCode     string          `json:"room_code"`
	Phase        string          `json:"phase"`
	CurrentRound int             `json:"current_round"`
	TotalRounds  int             `json:"total_rounds"`
	MaxBid       int             `json:"max_bid"`
	TrickNumber  int             `json:"trick_number"`
	CurrentTurn  string          `json:"current_turn"`
	LeadSuit     string          `json:"lead_suit"`
	TrumpSuit    string          `json:"trump_suit"`
	TrickWinner  string          `json:"trick_winner"`
	PlayerOrder  []string        `json:"player_order"`
	Players      []playerDTO     `json:"players"`
	CurrentTrick []trickEntryDTO `json:"current_trick"`
}

func toStateSync(g *domain.Game) stateSyncDTO {
	players := make([]playerDTO, 0, len(g.PlayerOrder))
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		players = append(players, playerDTO{
			UserID:         p.UserID,
			Name:           p.Name,
			Seat:           p.Seat,
			IsBot:          p.IsBot,
			IsConnected:    p.IsConnected,
			IsReady:        p.IsReady,
			Bid:            p.Bid,
			TricksWon:      p.TricksWon,
			Score:          p.Score,
			RoundScore:     p.RoundScore,
			CardsRemaining: len(p.Hand),
		})
	}

	trick := make([]trickEntryDTO, 0, len(g.CurrentTrick))
	for _, e := range g.CurrentTrick {
		trick = append(trick, trickEntryDTO{UserID: e.PlayerID, Card: toCardDTO(e.Card)})
	}

	return stateSyncDTO{
		RoomCode:     g.RoomCode,
		Phase:        string(g.Phase),
		CurrentRound: g.CurrentRound,
		TotalRounds:  g.TotalRounds,
		MaxBid:       g.MaxBid,
		TrickNumber:  g.TrickNumber,
		CurrentTurn:  g.CurrentTurn,
		LeadSuit:     string(g.LeadSuit),
		TrumpSuit:    string(domain.TrumpSuit),
		TrickWinner:  g.TrickWinner,
		PlayerOrder:  append([]string{}, g.PlayerOrder...),
		Players:      players,
		CurrentTrick: trick,
	}
}

type seatedDTO struct {
	UserID   string `json:"user_id"`
	Seat     int    `json:"seat"`
	RoomCode string `json:"room_code"`
}

type playerLeftDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type playerReconnectedDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// reconnectedDTO acknowledges a rejoin to the returning player only.
type reconnectedDTO struct {
	RoomCode string `json:"room_code"`
}

type playerJoinedDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	IsBot  bool   `json:"is_bot"`
}

type biddingStartedDTO struct {
	Round       int    `json:"round"`
	CurrentTurn string `json:"current_turn"`
}

type dealtDTO struct {
	Round       int    `json:"round"`
	FirstBidder string `json:"first_bidder"`
}

type handDealtDTO struct {
	Hand []cardDTO `json:"hand"`
}

type bidPlacedDTO struct {
	UserID   string `json:"user_id"`
	Bid      int    `json:"bid"`
	NextTurn string `json:"next_turn"`
	AllBid   bool   `json:"all_bid"`
}

type cardPlayedDTO struct {
	UserID        string  `json:"user_id"`
	Card          cardDTO `json:"card"`
	LeadSuit      string  `json:"lead_suit"`
	NextTurn      string  `json:"next_turn"`
	TrickComplete bool    `json:"trick_complete"`
}

type trickEndedDTO struct {
	WinnerID    string `json:"winner_id"`
	TrickNumber int    `json:"trick_number"`
}

type roundResultDTO struct {
	UserID     string  `json:"user_id"`
	Bid        int     `json:"bid"`
	TricksWon  int     `json:"tricks_won"`
	RoundScore float64 `json:"round_score"`
	TotalScore float64 `json:"total_score"`
}

func toRoundResultDTOs(results []app.RoundResult) []roundResultDTO {
	out := make([]roundResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, roundResultDTO{
			UserID:     r.UserID,
			Bid:        r.Bid,
			TricksWon:  r.TricksWon,
			RoundScore: r.RoundScore,
			TotalScore: r.TotalScore,
		})
	}
	return out
}

type roundEndedDTO struct {
	Round     int              `json:"round"`
	Results   []roundResultDTO `json:"results"`
	LastRound bool             `json:"last_round"`
}

type gameOverDTO struct {
	Standings      []roundResultDTO `json:"standings"`
	BalanceChanges map[string]int64 `json:"balance_changes,omitempty"`
}

type matchRestartedDTO struct {
	RoomCode string `json:"room_code"`
}
