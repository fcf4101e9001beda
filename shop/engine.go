package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"divinetemple/ledger"
	"divinetemple/notify"
	"divinetemple/store"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned for ids not in the catalog.
	ErrItemNotFound = errors.New("item not found")
	// ErrAlreadyOwned is returned on a repeat purchase. Purchases are not
	// idempotent-success: the second attempt is an explicit rejection.
	ErrAlreadyOwned = errors.New("item already owned")
	// ErrInsufficientFunds is returned when the XP balance cannot cover
	// the item cost.
	ErrInsufficientFunds = errors.New("insufficient xp")
	// ErrInvalidSlot is returned when activating a type that is not an
	// exclusive slot (theme/sound/effect/avatar).
	ErrInvalidSlot = errors.New("not an activatable slot type")
)

// Result is the outcome of a purchase. User-input failures land here as
// a message plus a sentinel in Err; nothing is thrown.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Engine is the reward shop for one user: catalog lookups, XP-gated
// purchases, exclusive-slot activation and stacking timed boosters.
// The in-memory state is authoritative; persistence is best effort, so
// a purchase either fully applies in memory or not at all.
type Engine struct {
	mu       sync.Mutex
	ledger   ledger.Ledger
	store    store.Store
	notifier notify.Notifier
	key      string
	state    *State

	catalog map[string]Item
	order   []string // catalog ids in definition order

	timers map[string]*time.Timer // booster token -> expiry timer
	now    func() time.Time
}

// NewEngine loads (or creates) the shop state stored under key.
func NewEngine(led ledger.Ledger, st store.Store, n notify.Notifier, key string) *Engine {
	e := &Engine{
		ledger:   led,
		store:    st,
		notifier: n,
		key:      key,
		catalog:  make(map[string]Item),
		timers:   make(map[string]*time.Timer),
		now:      time.Now,
	}
	for _, item := range buildCatalog() {
		e.catalog[item.ID] = item
		e.order = append(e.order, item.ID)
	}
	e.state = e.loadState()
	e.rescheduleBoosters()
	return e
}

func (e *Engine) loadState() *State {
	data, err := e.store.Load(e.key)
	if err != nil {
		log.Printf("shop: load failed for %s, starting fresh: %v", e.key, err)
		return newState()
	}
	if data == nil {
		return newState()
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("shop: corrupt state for %s, starting fresh: %v", e.key, err)
		return newState()
	}
	st.init()
	return &st
}

// rescheduleBoosters re-arms expiry timers for boosters that survived a
// restart and drops the ones that expired while the process was down.
func (e *Engine) rescheduleBoosters() {
	now := e.now()
	kept := e.state.ActiveBoosters[:0]
	for _, b := range e.state.ActiveBoosters {
		if !b.ExpiresAt.After(now) {
			continue
		}
		kept = append(kept, b)
		e.scheduleRemoval(b.Token, b.ExpiresAt.Sub(now))
	}
	e.state.ActiveBoosters = kept
}

// Purchase validates and executes a purchase. Preconditions are checked
// in order, first failure wins: unknown item, already owned, insufficient
// balance (message carries the exact shortfall).
func (e *Engine) Purchase(itemID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.catalog[itemID]
	if !ok {
		return Result{
			Message: "That item is not in the shop.",
			Err:     fmt.Errorf("%w: %s", ErrItemNotFound, itemID),
		}
	}
	if e.state.owns(itemID) {
		return Result{
			Message: fmt.Sprintf("You already own %s.", item.Name),
			Err:     fmt.Errorf("%w: %s", ErrAlreadyOwned, itemID),
		}
	}
	balance, err := e.ledger.Balance()
	if err != nil {
		return Result{
			Message: "Could not read your XP balance. Please try again.",
			Err:     err,
		}
	}
	if balance < item.Cost {
		shortfall := item.Cost - balance
		return Result{
			Message: fmt.Sprintf("You need %d more XP to buy %s.", shortfall, item.Name),
			Err:     fmt.Errorf("%w: short %d xp", ErrInsufficientFunds, shortfall),
		}
	}

	if err := e.ledger.Deduct(item.Cost); err != nil {
		// Nothing has been applied yet; the purchase simply fails whole.
		return Result{
			Message: "Purchase failed. Your XP was not spent.",
			Err:     err,
		}
	}

	now := e.now()
	e.state.OwnedItems = append(e.state.OwnedItems, OwnedItem{
		ID:          item.ID,
		PurchasedAt: now,
		Cost:        item.Cost,
	})
	e.state.PurchaseHistory = append([]PurchaseRecord{{
		ItemID:   item.ID,
		ItemName: item.Name,
		Cost:     item.Cost,
		Date:     now,
	}}, e.state.PurchaseHistory...)

	switch item.Type {
	case TypeTheme:
		// Themes auto-activate on purchase.
		e.state.ActiveTheme = item.ID
	case TypeBooster:
		e.activateBoosterLocked(item)
	}

	e.persistLocked()
	e.notifier.Notify(notify.KindPurchase, item)

	return Result{
		Success: true,
		Message: fmt.Sprintf("%s purchased!", item.Name),
	}
}

// CanAfford reports whether the current balance covers the item. It never
// mutates state; unknown ids are simply unaffordable.
func (e *Engine) CanAfford(itemID string) bool {
	e.mu.Lock()
	item, ok := e.catalog[itemID]
	e.mu.Unlock()
	if !ok {
		return false
	}
	balance, err := e.ledger.Balance()
	if err != nil {
		return false
	}
	return balance >= item.Cost
}

// ActivateItem places itemID into its exclusive slot, unconditionally
// replacing whatever was active there. Ownership is not validated here;
// callers that want gating check OwnsItem first.
func (e *Engine) ActivateItem(itemID string, slot ItemType) error {
	if !IsSlotType(slot) {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch slot {
	case TypeTheme:
		e.state.ActiveTheme = itemID
	case TypeSound:
		e.state.ActiveSound = itemID
	case TypeEffect:
		e.state.ActiveEffect = itemID
	case TypeAvatar:
		e.state.ActiveAvatar = itemID
	}
	e.persistLocked()
	return nil
}

// ActivateBooster starts another timed run of a consumable booster.
// Boosters are consumables, so every activation after the purchase-time
// one is charged at the item's cost again and logged in the purchase
// history. The shortfall check mirrors Purchase.
func (e *Engine) ActivateBooster(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.catalog[itemID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if item.Type != TypeBooster {
		return fmt.Errorf("%s is not a booster", itemID)
	}
	balance, err := e.ledger.Balance()
	if err != nil {
		return err
	}
	if balance < item.Cost {
		return fmt.Errorf("%w: short %d xp", ErrInsufficientFunds, item.Cost-balance)
	}
	if err := e.ledger.Deduct(item.Cost); err != nil {
		return err
	}
	e.state.PurchaseHistory = append([]PurchaseRecord{{
		ItemID:   item.ID,
		ItemName: item.Name,
		Cost:     item.Cost,
		Date:     e.now(),
	}}, e.state.PurchaseHistory...)
	e.activateBoosterLocked(item)
	e.persistLocked()
	return nil
}

func (e *Engine) activateBoosterLocked(item Item) {
	mult := item.Multiplier
	if mult == 0 {
		mult = defaultBoosterMultiplier
	}
	now := e.now()
	b := ActiveBooster{
		Token:       uuid.NewString(),
		ID:          item.ID,
		ActivatedAt: now,
		ExpiresAt:   now.Add(item.Duration),
		Multiplier:  mult,
	}
	e.state.ActiveBoosters = append(e.state.ActiveBoosters, b)
	e.scheduleRemoval(b.Token, item.Duration)
}

// scheduleRemoval arms a deferred removal for one booster instance. The
// token keys the exact entry, so same-id boosters expire independently.
func (e *Engine) scheduleRemoval(token string, after time.Duration) {
	e.timers[token] = time.AfterFunc(after, func() {
		e.removeBooster(token)
	})
}

func (e *Engine) removeBooster(token string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.state.ActiveBoosters[:0]
	for _, b := range e.state.ActiveBoosters {
		if b.Token != token {
			kept = append(kept, b)
		}
	}
	e.state.ActiveBoosters = kept
	delete(e.timers, token)
	e.persistLocked()
}

// ActiveBoosterMultiplier folds the multipliers of all running boosters
// into one factor, starting from 1. Entries past expiry are skipped even
// if their removal timer has not fired (timers are best effort).
func (e *Engine) ActiveBoosterMultiplier() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	mult := 1.0
	for _, b := range e.state.ActiveBoosters {
		if b.ExpiresAt.After(now) {
			mult *= b.Multiplier
		}
	}
	return mult
}

// SweepExpired drops boosters whose expiry passed without their timer
// firing (e.g. process suspension) and returns how many were removed.
func (e *Engine) SweepExpired() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	kept := e.state.ActiveBoosters[:0]
	removed := 0
	for _, b := range e.state.ActiveBoosters {
		if b.ExpiresAt.After(now) {
			kept = append(kept, b)
			continue
		}
		if t, ok := e.timers[b.Token]; ok {
			t.Stop()
			delete(e.timers, b.Token)
		}
		removed++
	}
	e.state.ActiveBoosters = kept
	if removed > 0 {
		e.persistLocked()
	}
	return removed
}

// Item looks up a catalog entry.
func (e *Engine) Item(itemID string) (Item, bool) {
	item, ok := e.catalog[itemID]
	return item, ok
}

// Catalog returns the items in definition order.
func (e *Engine) Catalog() []Item {
	out := make([]Item, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.catalog[id])
	}
	return out
}

// OwnsItem reports whether the user has purchased itemID.
func (e *Engine) OwnsItem(itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.owns(itemID)
}

// OwnedItems returns a copy of the ownership records.
func (e *Engine) OwnedItems() []OwnedItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]OwnedItem(nil), e.state.OwnedItems...)
}

// PurchaseHistory returns a copy of the history, newest first.
func (e *Engine) PurchaseHistory() []PurchaseRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]PurchaseRecord(nil), e.state.PurchaseHistory...)
}

// ActiveItems returns the current slot loadout.
func (e *Engine) ActiveItems() ActiveItems {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ActiveItems{
		Theme:  e.state.ActiveTheme,
		Sound:  e.state.ActiveSound,
		Effect: e.state.ActiveEffect,
		Avatar: e.state.ActiveAvatar,
	}
}

// ActiveBoosters returns a copy of the running booster list.
func (e *Engine) ActiveBoosters() []ActiveBooster {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ActiveBooster(nil), e.state.ActiveBoosters...)
}

// Close stops all pending booster timers. State is left as persisted.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for token, t := range e.timers {
		t.Stop()
		delete(e.timers, token)
	}
}

func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.state)
	if err != nil {
		log.Printf("shop: marshal failed for %s: %v", e.key, err)
		return
	}
	if err := e.store.Save(e.key, data); err != nil {
		log.Printf("shop: save failed for %s (state kept in memory): %v", e.key, err)
	}
}
