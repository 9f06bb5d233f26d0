package brain

import (
	"testing"

	"callbreak/internal/domain"
)

func card(t *testing.T, id string) domain.Card {
	t.Helper()
	c, err := domain.CardFromID(id)
	if err != nil {
		t.Fatalf("bad card id %q: %v", id, err)
	}
	return c
}

func TestObservePlayMarksPlayed(t *testing.T) {
	m := NewMemory()
	ah := card(t, "AH")

	if m.IsPlayed(ah) {
		t.Fatal("fresh memory reports AH played")
	}
	m.ObservePlay("p2", ah, domain.SuitHearts)
	if !m.IsPlayed(ah) {
		t.Fatal("AH not marked played")
	}
}

func TestVoidInference(t *testing.T) {
	m := NewMemory()

	// Following suit reveals nothing.
	m.ObservePlay("p2", card(t, "4H"), domain.SuitHearts)
	if m.IsVoid("p2", domain.SuitHearts) {
		t.Error("following suit marked a void")
	}

	// Discarding off-suit reveals a void in the lead suit.
	m.ObservePlay("p3", card(t, "2C"), domain.SuitHearts)
	if !m.IsVoid("p3", domain.SuitHearts) {
		t.Error("off-suit play did not mark a void")
	}
	if m.IsVoid("p3", domain.SuitClubs) {
		t.Error("void recorded against the wrong suit")
	}

	// Leading has no lead suit to be void in.
	m.ObservePlay("p4", card(t, "9D"), "")
	if m.IsVoid("p4", domain.SuitDiamonds) {
		t.Error("leading a card marked a void")
	}
}

func TestIsBoss(t *testing.T) {
	m := NewMemory()
	qh := card(t, "QH")

	if m.IsBoss(qh) {
		t.Fatal("QH boss while AH and KH are unseen")
	}

	m.ObservePlay("p2", card(t, "AH"), domain.SuitHearts)
	if m.IsBoss(qh) {
		t.Fatal("QH boss while KH is unseen")
	}

	// The king in our own hand cannot beat us either.
	m.ObserveHand([]domain.Card{card(t, "KH"), qh})
	if !m.IsBoss(qh) {
		t.Fatal("QH not boss with AH played and KH in hand")
	}

	// An ace is always boss.
	if !m.IsBoss(card(t, "AS")) {
		t.Error("ace not boss")
	}
}

func TestRemainingInSuit(t *testing.T) {
	m := NewMemory()
	if got := m.RemainingInSuit(domain.SuitHearts); got != 13 {
		t.Fatalf("fresh memory: %d hearts remaining, want 13", got)
	}

	m.ObserveHand([]domain.Card{card(t, "AH"), card(t, "4H")})
	m.ObservePlay("p2", card(t, "KH"), domain.SuitHearts)
	if got := m.RemainingInSuit(domain.SuitHearts); got != 10 {
		t.Errorf("%d hearts remaining, want 10", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	m := NewMemory()
	m.ObserveHand([]domain.Card{card(t, "AH")})
	m.ObservePlay("p2", card(t, "2C"), domain.SuitHearts)

	m.Reset()

	if m.IsPlayed(card(t, "2C")) {
		t.Error("played card survived reset")
	}
	if m.IsVoid("p2", domain.SuitHearts) {
		t.Error("void survived reset")
	}
	if got := m.RemainingInSuit(domain.SuitHearts); got != 13 {
		t.Errorf("%d hearts remaining after reset, want 13", got)
	}
}

func TestObserveHandReplacesPrevious(t *testing.T) {
	m := NewMemory()
	m.ObserveHand([]domain.Card{card(t, "AH")})
	m.ObserveHand([]domain.Card{card(t, "KD")})

	// The first hand's card is opponent-unknown again.
	if m.RemainingInSuit(domain.SuitHearts) != 13 {
		t.Error("stale own-hand marking survived a new deal")
	}
	if m.RemainingInSuit(domain.SuitDiamonds) != 12 {
		t.Error("new hand not recorded")
	}
}
