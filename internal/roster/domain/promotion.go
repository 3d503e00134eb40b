package domain

// AvailablePromotionDice returns the unspent promotion dice implied by the
// persisted counters. The two counters are the single durable source;
// availability is always re-derived rather than cached.
func AvailablePromotionDice(earned, spent int) int {
	available := earned - spent
	if available < 0 {
		return 0
	}
	return available
}

// UnresolvedPromotionRolls returns how many promotion rolls remain for a
// member in the current post-game session: the persisted counters plus the
// rate earned this battle, minus rolls already logged in the session.
//
// Deriving from counters plus the session log (instead of a mutable field)
// keeps abandoned sessions safe: spends that were applied persist, and
// potential that was never rolled survives to a future battle.
func UnresolvedPromotionRolls(earned, perBattleRate, spent, loggedThisSession int) int {
	unresolved := (earned + perBattleRate) - spent - loggedThisSession
	if unresolved < 0 {
		return 0
	}
	return unresolved
}
