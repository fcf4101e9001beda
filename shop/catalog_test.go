package shop

import "testing"

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, item := range buildCatalog() {
		if seen[item.ID] {
			t.Errorf("duplicate item ID: %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestCatalog_WellFormed(t *testing.T) {
	for _, item := range buildCatalog() {
		if item.Cost <= 0 {
			t.Errorf("%s: non-positive cost %d", item.ID, item.Cost)
		}
		if item.Name == "" || item.Description == "" {
			t.Errorf("%s: missing name or description", item.ID)
		}
		if item.Type == TypeBooster && item.Duration <= 0 {
			t.Errorf("%s: booster without a duration", item.ID)
		}
		if item.Type != TypeBooster && (item.Duration != 0 || item.Multiplier != 0) {
			t.Errorf("%s: booster fields on a %s", item.ID, item.Type)
		}
	}
}

func TestCatalog_AllTypesRepresented(t *testing.T) {
	types := map[ItemType]bool{
		TypeTheme: false, TypeSound: false, TypeDeck: false,
		TypeEffect: false, TypeAvatar: false, TypeBooster: false,
		TypeKnowledge: false, TypeTitle: false, TypeFrame: false,
		TypeBadge: false,
	}
	for _, item := range buildCatalog() {
		types[item.Type] = true
	}
	for typ, seen := range types {
		if !seen {
			t.Errorf("type %q has no items", typ)
		}
	}
}

func TestIsSlotType(t *testing.T) {
	slots := []ItemType{TypeTheme, TypeSound, TypeEffect, TypeAvatar}
	for _, typ := range slots {
		if !IsSlotType(typ) {
			t.Errorf("%s should be a slot type", typ)
		}
	}
	nonSlots := []ItemType{TypeDeck, TypeBooster, TypeKnowledge, TypeTitle, TypeFrame, TypeBadge}
	for _, typ := range nonSlots {
		if IsSlotType(typ) {
			t.Errorf("%s should not be a slot type", typ)
		}
	}
}
