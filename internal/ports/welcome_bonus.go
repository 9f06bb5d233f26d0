package ports

import "context"

// WelcomeBonusPort grants the starting gold at most once per account.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce credits the starting gold that stakes a new
	// player's first games. Returns granted=false when the account already
	// received it.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
