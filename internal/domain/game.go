package domain

// Phase represents the lifecycle stage of a Call Break session.
type Phase string

const (
	// PhaseWaiting is the pre-game state where humans ready up. Also the
	// restart target.
	PhaseWaiting Phase = "waiting"
	// PhaseDealing covers the deal and the short reveal pause before bidding.
	PhaseDealing Phase = "dealing"
	// PhaseBidding rotates through the seats collecting bids.
	PhaseBidding Phase = "bidding"
	// PhasePlaying is the trick-by-trick card play.
	PhasePlaying Phase = "playing"
	// PhaseTrickEnd is the pause between a resolved trick and the next lead.
	PhaseTrickEnd Phase = "trick_end"
	// PhaseRoundEnd is entered after the 13th trick, once scores are applied.
	PhaseRoundEnd Phase = "round_end"
	// PhaseGameOver is terminal: all rounds have been scored.
	PhaseGameOver Phase = "game_over"
)

// Defaults for a match. TotalRounds and MaxBid live on the Game so config can
// override them per session.
const (
	DefaultTotalRounds = 5
	DefaultMaxBid      = 8
)

// Player holds one seat's state. Owned exclusively by the session; only the
// app service mutates it.
type Player struct {
	UserID      string
	Name        string
	Seat        int // 0..3, stable for the match
	IsBot       bool
	IsConnected bool
	IsReady     bool

	Bid        int // 0 = not yet bid this round
	TricksWon  int
	Score      float64 // cumulative across rounds
	RoundScore float64 // last round only
	Hand       []Card
}

// TrickEntry is one played card in the current trick, immutable once appended.
type TrickEntry struct {
	PlayerID string
	Card     Card
}

// Game is the authoritative aggregate for a single Call Break session.
type Game struct {
	RoomCode string
	Phase    Phase

	CurrentRound int
	TotalRounds  int
	MaxBid       int

	TrickNumber   int    // 0..12 within the round
	CurrentTurn   string // player id whose action is expected
	LeadSuit      Suit   // "" when no card has been led
	BiddingCursor int    // seat index currently expected to bid
	TrickWinner   string // player id of the last resolved trick's winner

	Players      map[string]*Player
	PlayerOrder  []string // fixed seating / turn ring
	CurrentTrick []TrickEntry
}

// NewGame creates an empty session aggregate for the given room code.
func NewGame(roomCode string) *Game {
	return &Game{
		RoomCode:     roomCode,
		Phase:        PhaseWaiting,
		CurrentRound: 1,
		TotalRounds:  DefaultTotalRounds,
		MaxBid:       DefaultMaxBid,
		Players:      make(map[string]*Player),
	}
}

// AddPlayer seats a new player at the next free seat and returns it.
// Returns nil when the table is full or the id is already seated.
func (g *Game) AddPlayer(userID, name string, isBot bool) *Player {
	if len(g.PlayerOrder) >= NumPlayers {
		return nil
	}
	if _, ok := g.Players[userID]; ok {
		return nil
	}
	p := &Player{
		UserID:      userID,
		Name:        name,
		Seat:        len(g.PlayerOrder),
		IsBot:       isBot,
		IsConnected: true,
	}
	g.Players[userID] = p
	g.PlayerOrder = append(g.PlayerOrder, userID)
	return p
}

// RemovePlayer unseats a player and compacts the turn ring, reassigning seat
// indexes to stay contiguous.
func (g *Game) RemovePlayer(userID string) {
	if _, ok := g.Players[userID]; !ok {
		return
	}
	delete(g.Players, userID)
	order := g.PlayerOrder[:0]
	for _, id := range g.PlayerOrder {
		if id != userID {
			order = append(order, id)
		}
	}
	g.PlayerOrder = order
	for i, id := range g.PlayerOrder {
		g.Players[id].Seat = i
	}
}

// ReplacePlayer hands oldID's seat to a bot identity in place. Seat index,
// hand, bid, tricks and scores carry over, and every reference to the old id
// in the turn ring, the current trick and the turn markers is rewritten, so
// active rounds keep their four seats. Returns nil when oldID is not seated
// or newID already is.
func (g *Game) ReplacePlayer(oldID, newID, newName string) *Player {
	p, ok := g.Players[oldID]
	if !ok {
		return nil
	}
	if _, taken := g.Players[newID]; taken {
		return nil
	}

	delete(g.Players, oldID)
	p.UserID = newID
	p.Name = newName
	p.IsBot = true
	p.IsConnected = true
	p.IsReady = false
	g.Players[newID] = p

	for i, id := range g.PlayerOrder {
		if id == oldID {
			g.PlayerOrder[i] = newID
		}
	}
	for i := range g.CurrentTrick {
		if g.CurrentTrick[i].PlayerID == oldID {
			g.CurrentTrick[i].PlayerID = newID
		}
	}
	if g.CurrentTurn == oldID {
		g.CurrentTurn = newID
	}
	if g.TrickWinner == oldID {
		g.TrickWinner = newID
	}
	return p
}

// NextAfter returns the id seated after the given player in the ring.
func (g *Game) NextAfter(userID string) string {
	for i, id := range g.PlayerOrder {
		if id == userID {
			return g.PlayerOrder[(i+1)%len(g.PlayerOrder)]
		}
	}
	return ""
}

// FirstBidderSeat returns the seat that opens bidding this round. The opener
// rotates by one seat every round.
func (g *Game) FirstBidderSeat() int {
	return (g.CurrentRound - 1) % NumPlayers
}

// AllBid reports whether every seat has placed a nonzero bid.
func (g *Game) AllBid() bool {
	for _, p := range g.Players {
		if p.Bid == 0 {
			return false
		}
	}
	return len(g.Players) == NumPlayers
}

// HumanCount returns the number of seated humans.
func (g *Game) HumanCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

// AllHumansReady reports whether at least one human is seated and every
// seated human has readied up.
func (g *Game) AllHumansReady() bool {
	humans := 0
	for _, p := range g.Players {
		if p.IsBot {
			continue
		}
		humans++
		if !p.IsReady {
			return false
		}
	}
	return humans > 0
}
