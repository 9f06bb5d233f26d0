package integration

import (
	"encoding/json"
	"testing"
	"time"
)

type handDealtEvent struct {
	Hand []struct {
		ID   string `json:"id"`
		Suit string `json:"suit"`
		Rank int    `json:"rank"`
	} `json:"hand"`
}

type stateSyncEvent struct {
	RoomCode     string   `json:"room_code"`
	Phase        string   `json:"phase"`
	CurrentRound int      `json:"current_round"`
	CurrentTurn  string   `json:"current_turn"`
	PlayerOrder  []string `json:"player_order"`
}

func TestFullGameStart(t *testing.T) {
	// 1. Create 4 clients
	clients := make([]*TestClient, 4)
	for i := 0; i < 4; i++ {
		clients[i] = NewTestClient(t)
		defer clients[i].Close()
	}
	t.Log("Created 4 clients")

	// 2. Client 0 finds or creates a room via quick_match
	matchID := clients[0].QuickMatchAndJoin(t)
	t.Logf("Client 0 created/joined match: %s", matchID)

	// 3. Other clients join the SAME match
	for i := 1; i < 4; i++ {
		clients[i].JoinMatch(t, matchID, "")
		t.Logf("Client %d joined match", i)
	}

	// Wait a bit for presences to sync
	time.Sleep(1 * time.Second)

	// 4. Everyone readies up; the last ready triggers the deal
	for i, c := range clients {
		c.SendCommand(t, matchID, OpReady, nil)
		t.Logf("Client %d sent ready", i)
	}

	// 5. Assert: every client receives a private 13-card hand
	for i, c := range clients {
		data := c.WaitForMatchData(t, OpHandDealt, 10*time.Second)

		var event handDealtEvent
		if err := json.Unmarshal(data.Data, &event); err != nil {
			t.Errorf("Client %d failed to unmarshal hand: %v", i, err)
			continue
		}
		if len(event.Hand) != 13 {
			t.Errorf("Client %d expected 13 cards, got %d", i, len(event.Hand))
		}
	}

	// 6. Assert: bidding opens after the reveal pause
	data := clients[0].WaitForMatchData(t, OpBiddingStarted, 10*time.Second)
	var bidding struct {
		Round       int    `json:"round"`
		CurrentTurn string `json:"current_turn"`
	}
	if err := json.Unmarshal(data.Data, &bidding); err != nil {
		t.Fatalf("Failed to unmarshal bidding_started: %v", err)
	}
	if bidding.Round != 1 {
		t.Errorf("Expected round 1, got %d", bidding.Round)
	}
	if bidding.CurrentTurn == "" {
		t.Errorf("Expected a first bidder, got none")
	}

	t.Log("TestPassed: Hands dealt and bidding opened with 4 players.")
}

func TestRoomCodeFlow(t *testing.T) {
	host := NewTestClient(t)
	defer host.Close()
	guest := NewTestClient(t)
	defer guest.Close()

	matchID, roomCode := host.CreateRoom(t)
	if len(roomCode) != 4 {
		t.Fatalf("Expected a 4-character room code, got %q", roomCode)
	}
	host.JoinMatch(t, matchID, roomCode)

	// The guest resolves the code to the same match and joins with it
	resolved := guest.ResolveRoomCode(t, roomCode)
	if resolved != matchID {
		t.Fatalf("join_room resolved %s, expected %s", resolved, matchID)
	}
	guest.JoinMatch(t, resolved, roomCode)

	data := guest.WaitForMatchData(t, OpStateSync, 10*time.Second)
	var snapshot stateSyncEvent
	if err := json.Unmarshal(data.Data, &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal state sync: %v", err)
	}
	if snapshot.RoomCode != roomCode {
		t.Errorf("Snapshot advertises room %q, expected %q", snapshot.RoomCode, roomCode)
	}
	if len(snapshot.PlayerOrder) != 2 {
		t.Errorf("Expected 2 seated players, got %d", len(snapshot.PlayerOrder))
	}
}
