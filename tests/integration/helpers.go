package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// Opcodes mirrored from the server module; integration tests speak the wire
// protocol, not the server's internals.
const (
	OpReady     int64 = 1
	OpPlaceBid  int64 = 2
	OpPlayCard  int64 = 3
	OpNextRound int64 = 4
	OpRestart   int64 = 5

	OpSeated         int64 = 101
	OpDealt          int64 = 103
	OpHandDealt      int64 = 104
	OpBidPlaced      int64 = 105
	OpStateSync      int64 = 111
	OpBiddingStarted int64 = 113
)

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string
}

func NewTestClient(t *testing.T) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	// Create unique ID
	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())

	// Authenticate
	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	// Create Socket
	socket := client.NewSocket()
	if err := socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}

	return &TestClient{
		Client:  client,
		Session: session,
		Socket:  socket,
		UserID:  session.UserId,
	}
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

type quickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

type createRoomResponse struct {
	MatchID  string `json:"match_id"`
	RoomCode string `json:"room_code"`
}

type joinRoomResponse struct {
	MatchID  string `json:"match_id"`
	RoomCode string `json:"room_code"`
}

// QuickMatchAndJoin calls the 'quick_match' RPC and joins the returned match.
func (tc *TestClient) QuickMatchAndJoin(t *testing.T) string {
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "quick_match", "{}")
	if err != nil {
		t.Fatalf("RPC quick_match failed: %v", err)
	}

	var resp quickMatchResponse
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("RPC quick_match returned invalid payload: %v", err)
	}
	if resp.MatchID == "" {
		t.Fatalf("RPC quick_match returned empty match id")
	}

	tc.JoinMatch(t, resp.MatchID, "")
	return resp.MatchID
}

// CreateRoom calls the 'create_room' RPC without joining.
func (tc *TestClient) CreateRoom(t *testing.T) (matchID, roomCode string) {
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "create_room", "{}")
	if err != nil {
		t.Fatalf("RPC create_room failed: %v", err)
	}

	var resp createRoomResponse
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("RPC create_room returned invalid payload: %v", err)
	}
	return resp.MatchID, resp.RoomCode
}

// ResolveRoomCode calls the 'join_room' RPC and returns the match id.
func (tc *TestClient) ResolveRoomCode(t *testing.T, roomCode string) string {
	payload := fmt.Sprintf(`{"room_code":%q}`, roomCode)
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "join_room", payload)
	if err != nil {
		t.Fatalf("RPC join_room failed: %v", err)
	}

	var resp joinRoomResponse
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("RPC join_room returned invalid payload: %v", err)
	}
	return resp.MatchID
}

// JoinMatch joins a match, optionally declaring a room code in the metadata.
func (tc *TestClient) JoinMatch(t *testing.T, matchID, roomCode string) {
	var metadata map[string]string
	if roomCode != "" {
		metadata = map[string]string{"room_code": roomCode}
	}
	if _, err := tc.Socket.JoinMatch(context.Background(), nil, matchID, metadata); err != nil {
		t.Fatalf("Failed to join match %s: %v", matchID, err)
	}
}

// SendCommand marshals the payload as JSON and sends it on the match socket.
func (tc *TestClient) SendCommand(t *testing.T, matchID string, opCode int64, payload any) {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload for opcode %d: %v", opCode, err)
		}
	}
	if _, err := tc.Socket.SendMatchState(context.Background(), matchID, opCode, data, nil); err != nil {
		t.Fatalf("Failed to send opcode %d: %v", opCode, err)
	}
}

// WaitForMatchData waits for a specific opcode from the socket.
func (tc *TestClient) WaitForMatchData(t *testing.T, opCode int64, timeout time.Duration) *rtapi.MatchData {
	ch := make(chan *rtapi.MatchData)

	originalHandler := tc.Socket.OnMatchData
	tc.Socket.OnMatchData = func(data *rtapi.MatchData) {
		if data.OpCode == opCode {
			ch <- data
		}
		if originalHandler != nil {
			originalHandler(data)
		}
	}

	select {
	case data := <-ch:
		return data
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for OpCode %d", opCode)
		return nil
	}
}
