package domain

import "testing"

func TestAvailablePromotionDice(t *testing.T) {
	if got := AvailablePromotionDice(5, 3); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := AvailablePromotionDice(2, 2); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	// Spent can never exceed earned in well-formed data; clamp anyway.
	if got := AvailablePromotionDice(1, 4); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestUnresolvedPromotionRolls(t *testing.T) {
	// 3 earned previously, 1 per battle, 2 spent, 1 already logged.
	if got := UnresolvedPromotionRolls(3, 1, 2, 1); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	// A model with no per-battle rate and exhausted counters has none.
	if got := UnresolvedPromotionRolls(2, 0, 2, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	// Rolls logged this session reduce the remaining count.
	if got := UnresolvedPromotionRolls(0, 2, 0, 2); got != 0 {
		t.Fatalf("expected 0 after logging both rolls, got %d", got)
	}
	if got := UnresolvedPromotionRolls(0, 2, 0, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}
