// Package ledger owns the authoritative XP balance and level for a user.
// The progression and shop engines read from it and award or deduct XP
// through it; they never touch the balance directly.
package ledger

import "errors"

// ErrInsufficientXP is returned by Deduct when the balance cannot cover
// the requested amount. Callers are expected to check affordability first;
// this is the backstop.
var ErrInsufficientXP = errors.New("insufficient xp balance")

type Ledger interface {
	// AwardXP credits amount to the balance and to lifetime XP.
	// The reason and kind strings are recorded for the activity log only.
	AwardXP(amount int, reason, kind string) error

	// Deduct removes amount from the spendable balance. Lifetime XP and
	// level are unaffected.
	Deduct(amount int) error

	// Balance returns the spendable XP balance.
	Balance() (int, error)

	// Progress returns the current level and lifetime XP total.
	Progress() (level, lifetimeXP int, err error)
}
