package ledger

import (
	"fmt"
	"sync"
)

// Award is one recorded AwardXP call.
type Award struct {
	Amount int
	Reason string
	Kind   string
}

// MemLedger is an in-memory Ledger used by tests and by anonymous/offline
// sessions that have no user row.
type MemLedger struct {
	mu       sync.Mutex
	balance  int
	lifetime int
	Awards   []Award
}

func NewMemLedger(balance int) *MemLedger {
	return &MemLedger{balance: balance, lifetime: balance}
}

func (l *MemLedger) AwardXP(amount int, reason, kind string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	l.lifetime += amount
	l.Awards = append(l.Awards, Award{Amount: amount, Reason: reason, Kind: kind})
	return nil
}

func (l *MemLedger) Deduct(amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientXP, l.balance, amount)
	}
	l.balance -= amount
	return nil
}

func (l *MemLedger) Balance() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance, nil
}

func (l *MemLedger) Progress() (int, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LevelForLifetimeXP(l.lifetime), l.lifetime, nil
}
