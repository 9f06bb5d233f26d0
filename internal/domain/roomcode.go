package domain

import "math/rand"

// roomCodeAlphabet excludes confusable characters (0/O, 1/I).
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomCodeLength is the fixed length of generated room codes.
const RoomCodeLength = 4

// NewRoomCode generates a short join code for a session.
func NewRoomCode(rng *rand.Rand) string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rng.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
