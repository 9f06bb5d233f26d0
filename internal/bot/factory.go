package bot

import "fmt"

// BotLevel selects a strategy tier.
type BotLevel int

const (
	// BotLevelCasual plays the baseline heuristic.
	BotLevelCasual BotLevel = iota + 1
	// BotLevelPro adds the suit-profile bidding and card memory.
	BotLevelPro
)

// NewBrain creates a brain for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelCasual:
		return &StandardBot{}, nil
	case BotLevelPro:
		return NewProBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// LevelFromDifficulty maps an identity difficulty string to a strategy tier.
func LevelFromDifficulty(difficulty string) BotLevel {
	if difficulty == "hard" {
		return BotLevelPro
	}
	return BotLevelCasual
}

// NewAgent builds an agent for a synthesized identity.
func NewAgent(identity BotIdentity) (*Agent, error) {
	strategy, err := NewBrain(LevelFromDifficulty(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName(),
		Strategy: strategy,
	}, nil
}
