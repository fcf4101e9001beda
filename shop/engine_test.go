package shop

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"divinetemple/ledger"
	"divinetemple/notify"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (s *memStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *memStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), data...)
	return nil
}

func newTestEngine(t *testing.T, balance int) (*Engine, *ledger.MemLedger) {
	t.Helper()
	led := ledger.NewMemLedger(balance)
	e := NewEngine(led, newMemStore(), notify.Discard{}, "shop:test")
	t.Cleanup(e.Close)
	return e, led
}

func TestPurchase_Success(t *testing.T) {
	e, led := newTestEngine(t, 600)

	res := e.Purchase("theme_sunset")
	if !res.Success {
		t.Fatalf("purchase failed: %s", res.Message)
	}

	balance, _ := led.Balance()
	if balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}
	if !e.OwnsItem("theme_sunset") {
		t.Error("item not recorded as owned")
	}
	// Themes auto-activate on purchase
	if active := e.ActiveItems(); active.Theme != "theme_sunset" {
		t.Errorf("active theme = %q, want theme_sunset", active.Theme)
	}
}

func TestPurchase_ShortfallMessage(t *testing.T) {
	e, led := newTestEngine(t, 200)

	res := e.Purchase("theme_sunset")
	if res.Success {
		t.Fatal("purchase succeeded with insufficient balance")
	}
	want := "You need 300 more XP to buy Sunset Sanctuary."
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
	if !errors.Is(res.Err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", res.Err)
	}

	balance, _ := led.Balance()
	if balance != 200 {
		t.Errorf("balance changed on rejected purchase: %d", balance)
	}
	if e.OwnsItem("theme_sunset") {
		t.Error("rejected purchase recorded as owned")
	}
}

func TestPurchase_UnknownItem(t *testing.T) {
	e, _ := newTestEngine(t, 1000)

	res := e.Purchase("no_such_item")
	if res.Success || !errors.Is(res.Err, ErrItemNotFound) {
		t.Errorf("unknown item: success=%v err=%v", res.Success, res.Err)
	}
}

func TestPurchase_NoDoublePurchase(t *testing.T) {
	e, led := newTestEngine(t, 2000)

	if res := e.Purchase("sound_harp"); !res.Success {
		t.Fatalf("first purchase failed: %s", res.Message)
	}
	res := e.Purchase("sound_harp")
	if res.Success || !errors.Is(res.Err, ErrAlreadyOwned) {
		t.Errorf("repeat purchase: success=%v err=%v", res.Success, res.Err)
	}

	balance, _ := led.Balance()
	if balance != 1700 {
		t.Errorf("balance = %d, want 1700 (cost deducted once)", balance)
	}
	if len(e.OwnedItems()) != 1 {
		t.Errorf("owned %d items, want 1", len(e.OwnedItems()))
	}
}

func TestPurchase_HistoryNewestFirst(t *testing.T) {
	e, _ := newTestEngine(t, 2000)

	e.Purchase("sound_harp")
	e.Purchase("badge_dove")

	history := e.PurchaseHistory()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].ItemID != "badge_dove" || history[1].ItemID != "sound_harp" {
		t.Errorf("history order = [%s, %s]", history[0].ItemID, history[1].ItemID)
	}
}

func TestActivateItem_ReplacesSlot(t *testing.T) {
	e, _ := newTestEngine(t, 2000)

	e.Purchase("theme_sunset")
	e.Purchase("theme_midnight")

	if err := e.ActivateItem("theme_sunset", TypeTheme); err != nil {
		t.Fatal(err)
	}
	if err := e.ActivateItem("theme_midnight", TypeTheme); err != nil {
		t.Fatal(err)
	}
	if active := e.ActiveItems(); active.Theme != "theme_midnight" {
		t.Errorf("active theme = %q, want theme_midnight", active.Theme)
	}
}

func TestActivateItem_RejectsNonSlotTypes(t *testing.T) {
	e, _ := newTestEngine(t, 2000)

	if err := e.ActivateItem("badge_dove", TypeBadge); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
	if err := e.ActivateItem("booster_spark", TypeBooster); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
}

func TestBoosterMultipliers_Stack(t *testing.T) {
	e, _ := newTestEngine(t, 2000)
	base := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	// 1.5x for 30 minutes and 2x for 1 hour
	if res := e.Purchase("booster_spark"); !res.Success {
		t.Fatalf("spark purchase failed: %s", res.Message)
	}
	if res := e.Purchase("booster_flame"); !res.Success {
		t.Fatalf("flame purchase failed: %s", res.Message)
	}

	if got := e.ActiveBoosterMultiplier(); got != 3.0 {
		t.Errorf("multiplier = %v, want 3.0 (1.5 * 2.0)", got)
	}

	// Past the spark's window only the flame remains
	e.now = func() time.Time { return base.Add(45 * time.Minute) }
	if got := e.ActiveBoosterMultiplier(); got != 2.0 {
		t.Errorf("multiplier after 45m = %v, want 2.0", got)
	}

	// Past both windows the factor returns to 1
	e.now = func() time.Time { return base.Add(2 * time.Hour) }
	if got := e.ActiveBoosterMultiplier(); got != 1.0 {
		t.Errorf("multiplier after 2h = %v, want 1.0", got)
	}
}

func TestBooster_DefaultMultiplier(t *testing.T) {
	e, _ := newTestEngine(t, 2000)

	// booster_spark declares no multiplier and falls back to 1.5
	if res := e.Purchase("booster_spark"); !res.Success {
		t.Fatalf("purchase failed: %s", res.Message)
	}
	boosters := e.ActiveBoosters()
	if len(boosters) != 1 {
		t.Fatalf("active boosters = %d, want 1", len(boosters))
	}
	if boosters[0].Multiplier != 1.5 {
		t.Errorf("multiplier = %v, want 1.5", boosters[0].Multiplier)
	}
}

func TestBooster_SameItemStacksIndependently(t *testing.T) {
	e, _ := newTestEngine(t, 2000)
	base := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	e.Purchase("booster_spark")
	// Ten minutes later, a second activation of the same booster
	e.now = func() time.Time { return base.Add(10 * time.Minute) }
	if err := e.ActivateBooster("booster_spark"); err != nil {
		t.Fatal(err)
	}

	if got := e.ActiveBoosterMultiplier(); got != 2.25 {
		t.Errorf("multiplier = %v, want 2.25 (1.5 * 1.5)", got)
	}

	boosters := e.ActiveBoosters()
	if len(boosters) != 2 {
		t.Fatalf("active boosters = %d, want 2", len(boosters))
	}
	if boosters[0].Token == boosters[1].Token {
		t.Error("same-item activations share a token")
	}

	// The first activation expires at base+30m, the second at base+40m
	e.now = func() time.Time { return base.Add(35 * time.Minute) }
	if removed := e.SweepExpired(); removed != 1 {
		t.Errorf("sweep removed %d boosters, want 1", removed)
	}
	if got := e.ActiveBoosterMultiplier(); got != 1.5 {
		t.Errorf("multiplier = %v, want 1.5", got)
	}
}

func TestActivateBooster_ChargesCost(t *testing.T) {
	e, led := newTestEngine(t, 500)

	if res := e.Purchase("booster_spark"); !res.Success {
		t.Fatalf("purchase failed: %s", res.Message)
	}
	if balance, _ := led.Balance(); balance != 300 {
		t.Fatalf("balance after purchase = %d, want 300", balance)
	}

	// A consumable re-run costs the item's price again
	if err := e.ActivateBooster("booster_spark"); err != nil {
		t.Fatal(err)
	}
	if balance, _ := led.Balance(); balance != 100 {
		t.Errorf("balance after re-activation = %d, want 100", balance)
	}
	if got := len(e.ActiveBoosters()); got != 2 {
		t.Errorf("active boosters = %d, want 2", got)
	}
	if got := len(e.PurchaseHistory()); got != 2 {
		t.Errorf("history entries = %d, want 2", got)
	}

	// Too broke for a third run: no new booster, balance untouched
	err := e.ActivateBooster("booster_spark")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	if balance, _ := led.Balance(); balance != 100 {
		t.Errorf("balance changed on rejected activation: %d", balance)
	}
	if got := len(e.ActiveBoosters()); got != 2 {
		t.Errorf("active boosters after rejection = %d, want 2", got)
	}
}

func TestSweepExpired_Empty(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	if removed := e.SweepExpired(); removed != 0 {
		t.Errorf("sweep removed %d from empty state", removed)
	}
}

func TestRescheduleBoosters_DropsExpiredOnLoad(t *testing.T) {
	st := newMemStore()
	now := time.Now()
	state := State{
		ActiveBoosters: []ActiveBooster{
			{Token: "a", ID: "booster_spark", ExpiresAt: now.Add(-time.Minute), Multiplier: 1.5},
			{Token: "b", ID: "booster_flame", ExpiresAt: now.Add(time.Hour), Multiplier: 2.0},
		},
	}
	data, _ := json.Marshal(&state)
	st.docs["shop:test"] = data

	e := NewEngine(ledger.NewMemLedger(0), st, notify.Discard{}, "shop:test")
	defer e.Close()

	boosters := e.ActiveBoosters()
	if len(boosters) != 1 || boosters[0].Token != "b" {
		t.Errorf("boosters after reload = %v, want only the live one", boosters)
	}
	if got := e.ActiveBoosterMultiplier(); got != 2.0 {
		t.Errorf("multiplier = %v, want 2.0", got)
	}
}

func TestCanAfford(t *testing.T) {
	e, _ := newTestEngine(t, 500)

	if !e.CanAfford("theme_sunset") {
		t.Error("cannot afford item at exact cost")
	}
	if e.CanAfford("theme_gold") {
		t.Error("can afford item costing more than balance")
	}
	if e.CanAfford("no_such_item") {
		t.Error("can afford unknown item")
	}

	balance, _ := e.ledger.Balance()
	if balance != 500 {
		t.Errorf("CanAfford mutated balance: %d", balance)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	st := newMemStore()
	led := ledger.NewMemLedger(1000)

	e1 := NewEngine(led, st, notify.Discard{}, "shop:test")
	e1.Purchase("sound_harp")
	e1.ActivateItem("sound_harp", TypeSound)
	e1.Close()

	e2 := NewEngine(led, st, notify.Discard{}, "shop:test")
	defer e2.Close()
	if !e2.OwnsItem("sound_harp") {
		t.Error("ownership lost across reload")
	}
	if active := e2.ActiveItems(); active.Sound != "sound_harp" {
		t.Errorf("active sound = %q after reload", active.Sound)
	}
	if active := e2.ActiveItems(); active.Theme != "default" {
		t.Errorf("untouched slot = %q, want default", active.Theme)
	}
}

// failSaveStore loads nothing and rejects every save.
type failSaveStore struct{}

func (failSaveStore) Load(key string) ([]byte, error)    { return nil, nil }
func (failSaveStore) Save(key string, data []byte) error { return errors.New("disk full") }

func TestPurchase_SurvivesSaveFailure(t *testing.T) {
	led := ledger.NewMemLedger(600)
	e := NewEngine(led, failSaveStore{}, notify.Discard{}, "shop:test")
	t.Cleanup(e.Close)

	res := e.Purchase("theme_sunset")
	if !res.Success {
		t.Fatalf("purchase failed when the store rejects saves: %s", res.Message)
	}
	if !e.OwnsItem("theme_sunset") {
		t.Error("ownership lost on failed save")
	}
	if balance, _ := led.Balance(); balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}

	// In-memory ownership is authoritative: no second charge
	repeat := e.Purchase("theme_sunset")
	if repeat.Success || !errors.Is(repeat.Err, ErrAlreadyOwned) {
		t.Errorf("repeat purchase: success=%v err=%v", repeat.Success, repeat.Err)
	}
	if balance, _ := led.Balance(); balance != 100 {
		t.Errorf("balance after rejected repeat = %d, want 100", balance)
	}
}

func TestDefaultSlots(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	active := e.ActiveItems()
	if active.Theme != "default" || active.Sound != "default" ||
		active.Effect != "default" || active.Avatar != "default" {
		t.Errorf("fresh slots = %+v, want all default", active)
	}
}
