package nakama

const (
	// MatchNameCallBreak is the authoritative match handler name registered
	// with Nakama.
	MatchNameCallBreak = "callbreak_match"

	// RpcCreateRoom creates a fresh private room and returns its match id
	// and room code.
	RpcCreateRoom = "create_room"
	// RpcJoinRoom resolves a 4-character room code to a match id.
	RpcJoinRoom = "join_room"
	// RpcQuickMatch finds any open public room, creating one when needed.
	RpcQuickMatch = "quick_match"
)

// Join metadata keys supplied by clients.
const (
	JoinMetadataName     = "name"
	JoinMetadataRoomCode = "room_code"
)

// Join rejection reasons surfaced to the joining client.
const (
	JoinRejectRoomCodeMismatch = "room_code_mismatch"
	JoinRejectMatchFull        = "match_full"
	JoinRejectInvalidName      = "invalid_name"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpReady     int64 = 1
	OpPlaceBid  int64 = 2
	OpPlayCard  int64 = 3
	OpNextRound int64 = 4
	OpRestart   int64 = 5
	OpLeave     int64 = 6

	// Server -> Client events
	OpSeated            int64 = 101
	OpPlayerLeft        int64 = 102
	OpDealt             int64 = 103
	OpHandDealt         int64 = 104 // sent privately
	OpBidPlaced         int64 = 105
	OpCardPlayed        int64 = 106
	OpTrickEnded        int64 = 107
	OpRoundEnded        int64 = 108
	OpGameOver          int64 = 109
	OpPlayerReconnected int64 = 110
	OpStateSync         int64 = 111
	OpMatchRestarted    int64 = 112
	OpBiddingStarted    int64 = 113
	OpPlayerJoined      int64 = 114
	OpReconnected       int64 = 115 // sent privately
)
