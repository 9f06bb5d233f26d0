package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds per-deployment tuning for Call Break sessions. All delays
// are in seconds (the match handler runs at one tick per second).
type GameConfig struct {
	TotalRounds int   `json:"total_rounds"`
	MaxBid      int   `json:"max_bid"`
	BaseStake   int64 `json:"base_stake"`

	// DealRevealDelaySeconds is the pause between dealing and bidding so
	// clients can render the deal.
	DealRevealDelaySeconds int `json:"deal_reveal_delay_seconds"`
	// TrickEndPauseSeconds is the pause showing a resolved trick before it
	// is cleared.
	TrickEndPauseSeconds int `json:"trick_end_pause_seconds"`
	// BotMinDelaySeconds / BotMaxDelaySeconds bound the bots' cosmetic
	// thinking time.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// ReconnectGraceSeconds is how long a dropped player's seat is held.
	ReconnectGraceSeconds int `json:"reconnect_grace_seconds"`
}

// Defaults returns the built-in configuration.
func Defaults() GameConfig {
	return GameConfig{
		TotalRounds:            5,
		MaxBid:                 8,
		BaseStake:              100,
		DealRevealDelaySeconds: 2,
		TrickEndPauseSeconds:   2,
		BotMinDelaySeconds:     1,
		BotMaxDelaySeconds:     3,
		ReconnectGraceSeconds:  60,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. Fields
// left at zero fall back to the defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		fillZeroes(&c)
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when no
// file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

func fillZeroes(c *GameConfig) {
	d := Defaults()
	if c.TotalRounds <= 0 {
		c.TotalRounds = d.TotalRounds
	}
	if c.MaxBid <= 0 {
		c.MaxBid = d.MaxBid
	}
	if c.BaseStake < 0 {
		c.BaseStake = d.BaseStake
	}
	if c.DealRevealDelaySeconds <= 0 {
		c.DealRevealDelaySeconds = d.DealRevealDelaySeconds
	}
	if c.TrickEndPauseSeconds <= 0 {
		c.TrickEndPauseSeconds = d.TrickEndPauseSeconds
	}
	if c.BotMinDelaySeconds <= 0 {
		c.BotMinDelaySeconds = d.BotMinDelaySeconds
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	if c.ReconnectGraceSeconds <= 0 {
		c.ReconnectGraceSeconds = d.ReconnectGraceSeconds
	}
}
