package ports

import "context"

// AccountPort is the outbound interface for player profile updates.
type AccountPort interface {
	// UpdateProfile sets the username and display name shown at the table.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
