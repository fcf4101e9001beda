// services/engines.go - per-user engine registry
package services

import (
	"fmt"
	"sync"

	"divinetemple/ledger"
	"divinetemple/notify"
	"divinetemple/progression"
	"divinetemple/shop"
	"divinetemple/store"

	"gorm.io/gorm"
)

// EngineRegistry lazily builds and caches the progression and shop
// engines per user, so in-memory state and booster expiry timers survive
// across requests instead of being rebuilt on every call.
type EngineRegistry struct {
	mu  sync.Mutex
	db  *gorm.DB
	st  store.Store
	hub *notify.Hub

	progressionEngines map[uint]*progression.Engine
	shopEngines        map[uint]*shop.Engine
}

var engineRegistry *EngineRegistry

// InitEngineRegistry initializes the singleton registry.
func InitEngineRegistry(db *gorm.DB, st store.Store, hub *notify.Hub) {
	engineRegistry = &EngineRegistry{
		db:                 db,
		st:                 st,
		hub:                hub,
		progressionEngines: make(map[uint]*progression.Engine),
		shopEngines:        make(map[uint]*shop.Engine),
	}
}

// GetEngineRegistry returns the initialized registry.
func GetEngineRegistry() *EngineRegistry {
	return engineRegistry
}

func (r *EngineRegistry) Progression(userID uint) *progression.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.progressionEngines[userID]; ok {
		return e
	}
	e := progression.NewEngine(
		ledger.NewUserLedger(r.db, userID),
		r.st,
		r.hub.ForUser(userID),
		store.ProgressKey(fmt.Sprint(userID)),
	)
	r.progressionEngines[userID] = e
	return e
}

func (r *EngineRegistry) Shop(userID uint) *shop.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.shopEngines[userID]; ok {
		return e
	}
	e := shop.NewEngine(
		ledger.NewUserLedger(r.db, userID),
		r.st,
		r.hub.ForUser(userID),
		store.ShopKey(fmt.Sprint(userID)),
	)
	r.shopEngines[userID] = e
	return e
}

// ForEachShop visits every cached shop engine (used by the sweeper).
func (r *EngineRegistry) ForEachShop(fn func(*shop.Engine)) {
	r.mu.Lock()
	engines := make([]*shop.Engine, 0, len(r.shopEngines))
	for _, e := range r.shopEngines {
		engines = append(engines, e)
	}
	r.mu.Unlock()

	for _, e := range engines {
		fn(e)
	}
}

// Close stops all cached shop engines' timers.
func (r *EngineRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.shopEngines {
		e.Close()
	}
}
