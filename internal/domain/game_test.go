package domain

import (
	"math/rand"
	"strings"
	"testing"
)

func TestAddPlayer(t *testing.T) {
	g := NewGame("ABCD")

	for i := 0; i < NumPlayers; i++ {
		p := g.AddPlayer(string(rune('a'+i)), "Player", false)
		if p == nil {
			t.Fatalf("seat %d rejected", i)
		}
		if p.Seat != i {
			t.Errorf("seat = %d, want %d", p.Seat, i)
		}
		if !p.IsConnected {
			t.Error("new player not marked connected")
		}
	}

	if p := g.AddPlayer("e", "Fifth", false); p != nil {
		t.Error("seated a fifth player")
	}
	if p := g.AddPlayer("a", "Duplicate", false); p != nil {
		t.Error("seated a duplicate id")
	}
}

func TestRemovePlayerCompactsSeats(t *testing.T) {
	g := NewGame("ABCD")
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddPlayer(id, id, false)
	}

	g.RemovePlayer("b")

	if len(g.PlayerOrder) != 3 {
		t.Fatalf("order has %d entries, want 3", len(g.PlayerOrder))
	}
	for i, id := range g.PlayerOrder {
		if g.Players[id].Seat != i {
			t.Errorf("player %s seat = %d, want %d", id, g.Players[id].Seat, i)
		}
	}
	if g.NextAfter("a") != "c" {
		t.Errorf("NextAfter(a) = %s, want c", g.NextAfter("a"))
	}
	if g.NextAfter("d") != "a" {
		t.Errorf("ring does not wrap: NextAfter(d) = %s", g.NextAfter("d"))
	}
}

func TestReplacePlayerKeepsSeatState(t *testing.T) {
	g := NewGame("ABCD")
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddPlayer(id, "Player "+id, false)
	}
	g.Phase = PhasePlaying
	g.Players["b"].Bid = 3
	g.Players["b"].TricksWon = 2
	g.Players["b"].Score = 4.2
	g.Players["b"].Hand = []Card{{Suit: SuitHearts, Rank: 14}}
	g.CurrentTrick = []TrickEntry{{PlayerID: "b", Card: Card{Suit: SuitSpades, Rank: 5}}}
	g.CurrentTurn = "b"
	g.TrickWinner = "b"

	p := g.ReplacePlayer("b", "bot:x", "Bot X")
	if p == nil {
		t.Fatal("replacement rejected")
	}

	if _, exists := g.Players["b"]; exists {
		t.Error("old id still seated")
	}
	np := g.Players["bot:x"]
	if np == nil {
		t.Fatal("bot not seated")
	}
	if !np.IsBot || !np.IsConnected {
		t.Errorf("bot flags wrong: %+v", np)
	}
	if np.Seat != 1 || np.Bid != 3 || np.TricksWon != 2 || np.Score != 4.2 || len(np.Hand) != 1 {
		t.Errorf("seat state not carried over: %+v", np)
	}
	if g.PlayerOrder[1] != "bot:x" {
		t.Errorf("ring entry = %s, want bot:x", g.PlayerOrder[1])
	}
	if g.CurrentTrick[0].PlayerID != "bot:x" {
		t.Errorf("trick entry = %s, want bot:x", g.CurrentTrick[0].PlayerID)
	}
	if g.CurrentTurn != "bot:x" || g.TrickWinner != "bot:x" {
		t.Errorf("turn markers not rewritten: turn=%s winner=%s", g.CurrentTurn, g.TrickWinner)
	}

	if got := g.ReplacePlayer("ghost", "bot:y", "Bot Y"); got != nil {
		t.Error("replaced an unseated player")
	}
	if got := g.ReplacePlayer("c", "bot:x", "Bot X"); got != nil {
		t.Error("replacement allowed an id collision")
	}
}

func TestFirstBidderSeatRotates(t *testing.T) {
	g := NewGame("ABCD")

	expected := []int{0, 1, 2, 3, 0}
	for round := 1; round <= 5; round++ {
		g.CurrentRound = round
		if got := g.FirstBidderSeat(); got != expected[round-1] {
			t.Errorf("round %d first bidder seat = %d, want %d", round, got, expected[round-1])
		}
	}
}

func TestAllHumansReady(t *testing.T) {
	g := NewGame("ABCD")
	if g.AllHumansReady() {
		t.Error("empty table reported ready")
	}

	g.AddPlayer("a", "A", false)
	g.AddPlayer("bot:1", "Bot", true)
	if g.AllHumansReady() {
		t.Error("unready human reported ready")
	}

	g.Players["a"].IsReady = true
	if !g.AllHumansReady() {
		t.Error("ready human not reported ready; bots must not count")
	}
}

func TestComputeLabel(t *testing.T) {
	g := NewGame("ABCD")
	label := ComputeLabel(g)
	if !label.Open || label.Code != "ABCD" || label.Game != "callbreak" {
		t.Errorf("unexpected waiting label %+v", label)
	}

	for i := 0; i < NumPlayers; i++ {
		g.AddPlayer(string(rune('a'+i)), "P", false)
	}
	if ComputeLabel(g).Open {
		t.Error("full table still advertised open")
	}

	g.Phase = PhasePlaying
	label = ComputeLabel(g)
	if label.Open || label.Phase != string(PhasePlaying) {
		t.Errorf("unexpected playing label %+v", label)
	}
}

func TestNewRoomCode(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		code := NewRoomCode(rng)
		if len(code) != RoomCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), RoomCodeLength)
		}
		for _, ch := range code {
			if strings.ContainsAny(string(ch), "01OI") {
				t.Errorf("code %q contains confusable character %q", code, ch)
			}
		}
	}
}
