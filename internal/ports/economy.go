package ports

import "context"

// WalletUpdate is one gold delta for a seat, applied at settlement.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort is the outbound interface for the gold economy backing the
// table stakes.
type EconomyPort interface {
	// GetBalance returns a user's current gold balance.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies the game-over settlement deltas. Callers filter
	// out bot seats; every update here lands on a real wallet.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
