package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// botIDPrefix marks synthesized user ids so seat logic can tell bots from
// humans without a lookup table.
const botIDPrefix = "bot:"

// BotIdentity is a display persona for an automated seat. UserID is minted
// per match; the name/emoji pool entry is stable per seat index.
type BotIdentity struct {
	UserID     string `json:"-"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Difficulty string `json:"difficulty"` // "easy", "medium", "hard"
}

// DisplayName combines the emoji and name for client display.
func (i BotIdentity) DisplayName() string {
	if i.Emoji == "" {
		return i.Name
	}
	return i.Emoji + " " + i.Name
}

var defaultPool = []BotIdentity{
	{Name: "Maya", Emoji: "🦊", Difficulty: "medium"},
	{Name: "Ravi", Emoji: "🐼", Difficulty: "hard"},
	{Name: "Suki", Emoji: "🦉", Difficulty: "easy"},
	{Name: "Dipesh", Emoji: "🐯", Difficulty: "hard"},
	{Name: "Anju", Emoji: "🐸", Difficulty: "medium"},
	{Name: "Kiran", Emoji: "🦁", Difficulty: "easy"},
}

var (
	identityPool = defaultPool
	loadOnce     sync.Once
	loadErr      error
)

// LoadIdentities optionally replaces the built-in persona pool from a JSON
// file. Missing or invalid files leave the defaults in place.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var pool []BotIdentity
		if err := json.Unmarshal(data, &pool); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(pool) > 0 {
			identityPool = pool
		}
	})
	return loadErr
}

// SpawnIdentity mints a fresh bot identity for a seat. The persona is chosen
// by seat index so the same seat always shows the same face within a match.
func SpawnIdentity(seat int) BotIdentity {
	identity := identityPool[seat%len(identityPool)]
	identity.UserID = botIDPrefix + uuid.NewString()
	return identity
}

// IsBot reports whether the given user id belongs to a synthesized seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botIDPrefix)
}
