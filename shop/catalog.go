package shop

import "time"

// ItemType identifies what a shop item is. Theme, sound, effect and
// avatar are exclusive slots: one active id per slot at any time.
// Boosters are consumable and stack; the rest are plain unlocks.
type ItemType string

const (
	TypeTheme     ItemType = "theme"
	TypeSound     ItemType = "sound"
	TypeDeck      ItemType = "deck"
	TypeEffect    ItemType = "effect"
	TypeAvatar    ItemType = "avatar"
	TypeBooster   ItemType = "booster"
	TypeKnowledge ItemType = "knowledge"
	TypeTitle     ItemType = "title"
	TypeFrame     ItemType = "frame"
	TypeBadge     ItemType = "badge"
)

// defaultBoosterMultiplier applies when a booster item does not set one.
const defaultBoosterMultiplier = 1.5

// Item is a single catalog entry. Preview, CSSClass and DisplayText are
// presentation payloads the engine passes through untouched.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Cost          int      `json:"cost"`
	Icon          string   `json:"icon"`
	Type          ItemType `json:"type"`
	Premium       bool     `json:"premium,omitempty"`
	RequiredLevel int      `json:"required_level,omitempty"`
	Preview       string   `json:"preview,omitempty"`
	CSSClass      string   `json:"css_class,omitempty"`
	DisplayText   string   `json:"display_text,omitempty"`

	// Booster fields
	Duration   time.Duration `json:"duration,omitempty"`
	Multiplier float64       `json:"multiplier,omitempty"`
}

// IsSlotType reports whether t occupies an exclusive activation slot.
func IsSlotType(t ItemType) bool {
	switch t {
	case TypeTheme, TypeSound, TypeEffect, TypeAvatar:
		return true
	}
	return false
}

// AllItems returns the full shop catalog.
func AllItems() []Item {
	return buildCatalog()
}

func buildCatalog() []Item {
	return []Item{

		// ── Themes ─────────────────────────────────────────────────────────

		{ID: "theme_sunset", Name: "Sunset Sanctuary", Description: "Warm dusk tones over the temple courts", Cost: 500, Icon: "🌅", Type: TypeTheme, CSSClass: "theme-sunset"},
		{ID: "theme_midnight", Name: "Midnight Vigil", Description: "Deep indigo for late-night study", Cost: 500, Icon: "🌙", Type: TypeTheme, CSSClass: "theme-midnight"},
		{ID: "theme_olive", Name: "Mount of Olives", Description: "Soft greens and stone", Cost: 750, Icon: "🫒", Type: TypeTheme, CSSClass: "theme-olive"},
		{ID: "theme_gold", Name: "Gilded Courts", Description: "Gold leaf on every border", Cost: 1500, Icon: "✨", Type: TypeTheme, Premium: true, RequiredLevel: 10, CSSClass: "theme-gold"},

		// ── Sounds ─────────────────────────────────────────────────────────

		{ID: "sound_harp", Name: "Harp of David", Description: "Gentle harp chimes on every unlock", Cost: 300, Icon: "🎵", Type: TypeSound},
		{ID: "sound_shofar", Name: "Shofar Call", Description: "A triumphant blast for big moments", Cost: 400, Icon: "📯", Type: TypeSound},
		{ID: "sound_stream", Name: "Desert Stream", Description: "Soft running water in the background", Cost: 350, Icon: "💧", Type: TypeSound},

		// ── Card decks ─────────────────────────────────────────────────────

		{ID: "deck_parchment", Name: "Parchment Deck", Description: "Trivia cards on aged parchment", Cost: 400, Icon: "📜", Type: TypeDeck, Preview: "deck-parchment"},
		{ID: "deck_mosaic", Name: "Mosaic Deck", Description: "Byzantine tile artwork", Cost: 600, Icon: "🎨", Type: TypeDeck, Preview: "deck-mosaic"},

		// ── Effects ────────────────────────────────────────────────────────

		{ID: "effect_doves", Name: "Dove Flight", Description: "Doves cross the screen on a perfect score", Cost: 450, Icon: "🕊️", Type: TypeEffect, CSSClass: "fx-doves"},
		{ID: "effect_light", Name: "Shaft of Light", Description: "A sunbeam follows your streaks", Cost: 550, Icon: "🌤️", Type: TypeEffect, CSSClass: "fx-light"},

		// ── Avatars ────────────────────────────────────────────────────────

		{ID: "avatar_shepherd", Name: "Shepherd", Description: "Staff in hand, flock at heel", Cost: 250, Icon: "🧑‍🌾", Type: TypeAvatar},
		{ID: "avatar_scribe", Name: "Scribe", Description: "Ink-stained and proud of it", Cost: 250, Icon: "✍️", Type: TypeAvatar},
		{ID: "avatar_lion", Name: "Lion of Judah", Description: "For the bold", Cost: 800, Icon: "🦁", Type: TypeAvatar, Premium: true, RequiredLevel: 15},

		// ── XP boosters ────────────────────────────────────────────────────

		{ID: "booster_spark", Name: "Spark of Insight", Description: "1.5x XP for 30 minutes", Cost: 200, Icon: "⚡", Type: TypeBooster, Duration: 30 * time.Minute},
		{ID: "booster_flame", Name: "Tongue of Flame", Description: "2x XP for 1 hour", Cost: 400, Icon: "🔥", Type: TypeBooster, Duration: time.Hour, Multiplier: 2.0},
		{ID: "booster_pillar", Name: "Pillar of Fire", Description: "3x XP for 15 minutes", Cost: 500, Icon: "🔱", Type: TypeBooster, Duration: 15 * time.Minute, Multiplier: 3.0},

		// ── Knowledge unlocks ──────────────────────────────────────────────

		{ID: "knowledge_apocrypha", Name: "Apocrypha Studies", Description: "Unlock the apocrypha trivia pool", Cost: 900, Icon: "📚", Type: TypeKnowledge, Premium: true},
		{ID: "knowledge_hebrew", Name: "Hebrew Roots", Description: "Word-origin hints on every question", Cost: 700, Icon: "🔤", Type: TypeKnowledge},

		// ── Titles ─────────────────────────────────────────────────────────

		{ID: "title_anointed", Name: "The Anointed", Description: "Displayed beneath your name", Cost: 600, Icon: "👑", Type: TypeTitle, DisplayText: "The Anointed"},
		{ID: "title_lamplighter", Name: "Lamplighter", Description: "Displayed beneath your name", Cost: 350, Icon: "🪔", Type: TypeTitle, DisplayText: "Lamplighter"},

		// ── Frames ─────────────────────────────────────────────────────────

		{ID: "frame_laurel", Name: "Laurel Frame", Description: "A laurel wreath around your avatar", Cost: 300, Icon: "🌿", Type: TypeFrame, CSSClass: "frame-laurel"},
		{ID: "frame_flame", Name: "Flame Frame", Description: "Flickering border for the devoted", Cost: 450, Icon: "🔥", Type: TypeFrame, CSSClass: "frame-flame"},

		// ── Badges ─────────────────────────────────────────────────────────

		{ID: "badge_dove", Name: "Dove Badge", Description: "A small dove beside your posts", Cost: 150, Icon: "🕊️", Type: TypeBadge},
		{ID: "badge_star", Name: "Morning Star Badge", Description: "Shines on the leaderboard", Cost: 250, Icon: "⭐", Type: TypeBadge},
	}
}
