package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"callbreak/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateRoomResponse is returned to the caller of create_room.
type CreateRoomResponse struct {
	MatchID  string `json:"match_id"`
	RoomCode string `json:"room_code"`
}

// JoinRoomRequest carries the room code to resolve.
type JoinRoomRequest struct {
	RoomCode string `json:"room_code"`
}

// JoinRoomResponse is returned to the caller of join_room.
type JoinRoomResponse struct {
	MatchID  string `json:"match_id"`
	RoomCode string `json:"room_code"`
}

// QuickMatchResponse is returned to the caller of quick_match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcCreateRoom, rpcCreateRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcJoinRoom, rpcJoinRoom); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// rpcCreateRoom mints a room code, creates the match with it, and hands both
// back so the caller can share the code before joining.
func rpcCreateRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	roomCode := domain.NewRoomCode(rand.New(rand.NewSource(time.Now().UnixNano())))
	matchID, err := nk.MatchCreate(ctx, MatchNameCallBreak, map[string]interface{}{
		JoinMetadataRoomCode: roomCode,
	})
	if err != nil {
		logger.Error("rpcCreateRoom [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcCreateRoom [User:%s]: Created match %s with code %s", userID, matchID, roomCode)
	b, _ := json.Marshal(CreateRoomResponse{MatchID: matchID, RoomCode: roomCode})
	return string(b), nil
}

// rpcJoinRoom resolves a 4-character room code to a match id via a label
// query. Codes are matched case-insensitively.
func rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	if len(code) != domain.RoomCodeLength {
		return "", runtime.NewError("invalid room code", 3)
	}

	query := fmt.Sprintf("+label.game:callbreak +label.code:%s", code)
	limit := 1
	authoritative := true

	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, query)
	if err != nil {
		logger.Error("rpcJoinRoom [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) == 0 {
		return "", runtime.NewError("room not found", 5) // NOT_FOUND
	}

	b, _ := json.Marshal(JoinRoomResponse{MatchID: matches[0].MatchId, RoomCode: code})
	return string(b), nil
}

// rpcQuickMatch finds any open waiting room, creating one when none exist.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := "+label.open:T +label.game:callbreak +label.phase:waiting"

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := domain.NumPlayers - 1 // at least one seat free

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		b, _ := json.Marshal(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(b), nil
	}

	// Create a new room; the handler mints its own code.
	matchID, err := nk.MatchCreate(ctx, MatchNameCallBreak, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch: MatchCreate error: %v", err)
		return "", err
	}

	b, _ := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}
