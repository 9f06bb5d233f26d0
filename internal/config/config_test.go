package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.TotalRounds != 5 || d.MaxBid != 8 {
		t.Errorf("unexpected game shape defaults %+v", d)
	}
	if d.BotMinDelaySeconds > d.BotMaxDelaySeconds {
		t.Errorf("bot delay bounds inverted: %+v", d)
	}
	if d.ReconnectGraceSeconds != 60 {
		t.Errorf("reconnect grace = %d, want 60", d.ReconnectGraceSeconds)
	}
}

func TestLoadGameConfigFillsZeroes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	// Partial file: everything left out falls back to defaults.
	if err := os.WriteFile(path, []byte(`{"total_rounds": 3, "base_stake": 250}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatal(err)
	}

	c := GetGameConfig()
	if c.TotalRounds != 3 {
		t.Errorf("total rounds = %d, want 3", c.TotalRounds)
	}
	if c.BaseStake != 250 {
		t.Errorf("base stake = %d, want 250", c.BaseStake)
	}
	if c.MaxBid != Defaults().MaxBid {
		t.Errorf("max bid = %d, want default %d", c.MaxBid, Defaults().MaxBid)
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		t.Errorf("bot delay bounds inverted after load: %+v", c)
	}
}
