package shop

import "time"

// defaultSlot is the value of an activation slot with nothing purchased.
const defaultSlot = "default"

// OwnedItem records one purchase. An item id appears here at most once.
type OwnedItem struct {
	ID          string    `json:"id"`
	PurchasedAt time.Time `json:"purchasedAt"`
	Cost        int       `json:"cost"`
}

// ActiveBooster is one running XP booster. Token is unique per activation
// so two concurrent boosters of the same item expire independently.
type ActiveBooster struct {
	Token       string    `json:"token"`
	ID          string    `json:"id"`
	ActivatedAt time.Time `json:"activatedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Multiplier  float64   `json:"multiplier"`
}

// PurchaseRecord is one purchase-history line, newest first.
type PurchaseRecord struct {
	ItemID   string    `json:"itemId"`
	ItemName string    `json:"itemName"`
	Cost     int       `json:"cost"`
	Date     time.Time `json:"date"`
}

// ActiveItems is the current slot loadout.
type ActiveItems struct {
	Theme  string `json:"theme"`
	Sound  string `json:"sound"`
	Effect string `json:"effect"`
	Avatar string `json:"avatar"`
}

// State is the persisted shop record for one user.
type State struct {
	OwnedItems      []OwnedItem      `json:"ownedItems"`
	ActiveTheme     string           `json:"activeTheme"`
	ActiveSound     string           `json:"activeSound"`
	ActiveEffect    string           `json:"activeEffect"`
	ActiveAvatar    string           `json:"activeAvatar"`
	ActiveBoosters  []ActiveBooster  `json:"activeBoosters"`
	PurchaseHistory []PurchaseRecord `json:"purchaseHistory"`
}

func newState() *State {
	return &State{
		ActiveTheme:  defaultSlot,
		ActiveSound:  defaultSlot,
		ActiveEffect: defaultSlot,
		ActiveAvatar: defaultSlot,
	}
}

// init fills zero-value slots after deserialization of older records.
func (s *State) init() {
	if s.ActiveTheme == "" {
		s.ActiveTheme = defaultSlot
	}
	if s.ActiveSound == "" {
		s.ActiveSound = defaultSlot
	}
	if s.ActiveEffect == "" {
		s.ActiveEffect = defaultSlot
	}
	if s.ActiveAvatar == "" {
		s.ActiveAvatar = defaultSlot
	}
}

func (s *State) owns(itemID string) bool {
	for _, o := range s.OwnedItems {
		if o.ID == itemID {
			return true
		}
	}
	return false
}
