package domain

// RoundScore computes a player's score for one round. Making the bid earns
// the bid itself plus 0.1 per extra trick; falling short costs the full bid,
// not just the shortfall.
func RoundScore(bid, tricksWon int) float64 {
	if tricksWon >= bid {
		return float64(bid) + 0.1*float64(tricksWon-bid)
	}
	return -float64(bid)
}
