// services/sweeper.go - background booster expiry sweep
package services

import (
	"log"
	"time"

	"divinetemple/shop"
)

// BoosterSweeper periodically removes expired boosters whose one-shot
// expiry timers never fired (process suspension, clock jumps). The
// multiplier computation already ignores expired entries; the sweep just
// keeps the persisted lists from accumulating dead weight.
type BoosterSweeper struct {
	registry *EngineRegistry
	interval time.Duration
	done     chan struct{}
}

var boosterSweeper *BoosterSweeper

// InitBoosterSweeper initializes and starts the singleton sweeper.
func InitBoosterSweeper(registry *EngineRegistry, interval time.Duration) {
	boosterSweeper = &BoosterSweeper{
		registry: registry,
		interval: interval,
		done:     make(chan struct{}),
	}
	go boosterSweeper.run()
}

// GetBoosterSweeper returns the initialized sweeper.
func GetBoosterSweeper() *BoosterSweeper {
	return boosterSweeper
}

func (s *BoosterSweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *BoosterSweeper) sweep() {
	total := 0
	s.registry.ForEachShop(func(e *shop.Engine) {
		total += e.SweepExpired()
	})
	if total > 0 {
		log.Printf("sweeper: removed %d expired boosters", total)
	}
}

// Stop halts the sweep loop.
func (s *BoosterSweeper) Stop() {
	close(s.done)
}
