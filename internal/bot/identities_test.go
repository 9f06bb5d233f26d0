package bot

import "testing"

func TestSpawnIdentityMintsUniqueIDs(t *testing.T) {
	a := SpawnIdentity(0)
	b := SpawnIdentity(0)

	if a.UserID == b.UserID {
		t.Error("two spawns for the same seat share a user id")
	}
	if !IsBot(a.UserID) {
		t.Errorf("spawned id %q not recognized as a bot", a.UserID)
	}
	if a.Name != b.Name {
		t.Error("same seat produced different personas")
	}
	if IsBot("2c0f41e4-7ad5-4c6e-a3a9-2a2f3b2f47d1") {
		t.Error("plain uuid misidentified as a bot")
	}
}

func TestDisplayName(t *testing.T) {
	withEmoji := BotIdentity{Name: "Maya", Emoji: "🦊"}
	if got := withEmoji.DisplayName(); got != "🦊 Maya" {
		t.Errorf("DisplayName = %q", got)
	}
	plain := BotIdentity{Name: "Maya"}
	if got := plain.DisplayName(); got != "Maya" {
		t.Errorf("DisplayName without emoji = %q", got)
	}
}

func TestNewAgentStrategyTier(t *testing.T) {
	hard := SpawnIdentity(0)
	hard.Difficulty = "hard"
	agent, err := NewAgent(hard)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := agent.Strategy.(*ProBot); !ok {
		t.Errorf("hard difficulty got %T, want *ProBot", agent.Strategy)
	}

	easy := SpawnIdentity(1)
	easy.Difficulty = "easy"
	agent, err = NewAgent(easy)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := agent.Strategy.(*StandardBot); !ok {
		t.Errorf("easy difficulty got %T, want *StandardBot", agent.Strategy)
	}
}
