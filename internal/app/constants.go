package app

const (
	// MandatoryTrumping is the session policy for trick play: a player void in
	// the lead suit holding only trumps that cannot win may discard anything.
	// The rules engine keeps the flag explicit so both behaviors stay testable.
	MandatoryTrumping = false

	// MaxNameLength bounds player display names at join time.
	MaxNameLength = 20
)
