package progression

// Category groups related achievements in the UI and prefixes the XP
// award reason.
type Category string

const (
	CategoryTrivia    Category = "Trivia"
	CategoryStreak    Category = "Streak"
	CategoryDevotion  Category = "Devotion"
	CategoryWisdom    Category = "Wisdom"
	CategoryCommunity Category = "Community"
	CategoryPremium   Category = "Premium"
	CategorySpecial   Category = "Special"
)

// Achievement describes a single unlockable goal. The catalog is fixed at
// process start; conditions are pure predicates over a Stats snapshot and
// must not depend on any other achievement's unlocked status.
type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	XPReward    int      `json:"xp_reward"`
	UnlockText  string   `json:"unlock_text,omitempty"`
	Condition   func(Stats) bool `json:"-"`
}

// premiumCategoriesAt counts premium categories whose session counter has
// reached min. Categories run 0..9 sessions each.
func premiumCategoriesAt(s Stats, min float64) int {
	cats, ok := asMap(s["premiumCategories"])
	if !ok {
		return 0
	}
	count := 0
	for _, v := range cats {
		if f, ok := toFloat(v); ok && f >= min {
			count++
		}
	}
	return count
}

// AllAchievements returns the full achievement catalog.
func AllAchievements() []Achievement {
	return buildCatalog()
}

func buildCatalog() []Achievement {
	return []Achievement{

		// ── Trivia ─────────────────────────────────────────────────────────

		{
			ID: "trivia_first_steps", Name: "First Steps",
			Description: "Complete your first trivia session",
			Category:    CategoryTrivia, XPReward: 50,
			UnlockText: "Your journey through the scriptures begins!",
			Condition:  func(s Stats) bool { return s.Num("triviaCompleted") >= 1 },
		},
		{
			ID: "trivia_novice", Name: "Temple Novice",
			Description: "Complete 10 trivia sessions",
			Category:    CategoryTrivia, XPReward: 75,
			Condition: func(s Stats) bool { return s.Num("triviaCompleted") >= 10 },
		},
		{
			ID: "trivia_scholar", Name: "Temple Scholar",
			Description: "Complete 50 trivia sessions",
			Category:    CategoryTrivia, XPReward: 150,
			Condition: func(s Stats) bool { return s.Num("triviaCompleted") >= 50 },
		},
		{
			ID: "trivia_sage", Name: "Temple Sage",
			Description: "Complete 200 trivia sessions",
			Category:    CategoryTrivia, XPReward: 300,
			Condition: func(s Stats) bool { return s.Num("triviaCompleted") >= 200 },
		},
		{
			ID: "trivia_flawless", Name: "Flawless",
			Description: "Earn a perfect trivia score",
			Category:    CategoryTrivia, XPReward: 100,
			Condition: func(s Stats) bool { return s.Num("perfectScores") >= 1 },
		},
		{
			ID: "trivia_flawless_10", Name: "Radiant Mind",
			Description: "Earn 10 perfect trivia scores",
			Category:    CategoryTrivia, XPReward: 250,
			Condition: func(s Stats) bool { return s.Num("perfectScores") >= 10 },
		},

		// ── Streak ─────────────────────────────────────────────────────────

		{
			ID: "streak_kindled", Name: "Kindled Flame",
			Description: "Answer 3 trivia questions correctly in a row",
			Category:    CategoryStreak, XPReward: 50,
			Condition: func(s Stats) bool { return s.Num("triviaStreak") >= 3 },
		},
		{
			ID: "streak_burning", Name: "Burning Bright",
			Description: "Answer 10 trivia questions correctly in a row",
			Category:    CategoryStreak, XPReward: 150,
			Condition: func(s Stats) bool { return s.Num("triviaStreak") >= 10 },
		},
		{
			ID: "faithful_week", Name: "Faithful Week",
			Description: "Visit the temple 7 days in a row",
			Category:    CategoryStreak, XPReward: 150,
			Condition: func(s Stats) bool { return s.Num("loginStreak") >= 7 },
		},
		{
			ID: "faithful_month", Name: "Faithful Month",
			Description: "Visit the temple 30 days in a row",
			Category:    CategoryStreak, XPReward: 500,
			UnlockText: "A month of unbroken devotion.",
			Condition:  func(s Stats) bool { return s.Num("loginStreak") >= 30 },
		},

		// ── Devotion ───────────────────────────────────────────────────────

		{
			ID: "journal_first", Name: "First Reflection",
			Description: "Write your first journal entry",
			Category:    CategoryDevotion, XPReward: 50,
			Condition: func(s Stats) bool { return s.Num("journalEntries") >= 1 },
		},
		{
			ID: "journal_devoted", Name: "Devoted Scribe",
			Description: "Write 30 journal entries",
			Category:    CategoryDevotion, XPReward: 200,
			Condition: func(s Stats) bool { return s.Num("journalEntries") >= 30 },
		},
		{
			ID: "meditation_hour", Name: "Still Waters",
			Description: "Meditate for a total of 60 minutes",
			Category:    CategoryDevotion, XPReward: 100,
			Condition: func(s Stats) bool { return s.Num("meditationMinutes") >= 60 },
		},
		{
			ID: "meditation_deep", Name: "Deep Stillness",
			Description: "Meditate for a total of 10 hours",
			Category:    CategoryDevotion, XPReward: 300,
			Condition: func(s Stats) bool { return s.Num("meditationMinutes") >= 600 },
		},
		{
			ID: "mandala_first", Name: "First Mandala",
			Description: "Color your first mandala",
			Category:    CategoryDevotion, XPReward: 50,
			Condition: func(s Stats) bool { return s.Num("mandalasColored") >= 1 },
		},
		{
			ID: "mandala_gallery", Name: "Mandala Gallery",
			Description: "Color 12 mandalas",
			Category:    CategoryDevotion, XPReward: 150,
			Condition: func(s Stats) bool { return s.Num("mandalasColored") >= 12 },
		},

		// ── Wisdom ─────────────────────────────────────────────────────────

		{
			ID: "wisdom_seeker", Name: "Seeker",
			Description: "Reach level 5",
			Category:    CategoryWisdom, XPReward: 100,
			Condition: func(s Stats) bool { return s.Num("level") >= 5 },
		},
		{
			ID: "wisdom_disciple", Name: "Disciple",
			Description: "Reach level 10",
			Category:    CategoryWisdom, XPReward: 200,
			Condition: func(s Stats) bool { return s.Num("level") >= 10 },
		},
		{
			ID: "wisdom_elder", Name: "Temple Elder",
			Description: "Reach level 25",
			Category:    CategoryWisdom, XPReward: 500,
			Condition: func(s Stats) bool { return s.Num("level") >= 25 },
		},
		{
			ID: "wisdom_overflowing", Name: "Overflowing Cup",
			Description: "Earn 10,000 lifetime XP",
			Category:    CategoryWisdom, XPReward: 250,
			Condition: func(s Stats) bool { return s.Num("totalXP") >= 10000 },
		},

		// ── Community ──────────────────────────────────────────────────────

		{
			ID: "community_first_friend", Name: "Fellow Traveler",
			Description: "Make your first temple friend",
			Category:    CategoryCommunity, XPReward: 50,
			Condition: func(s Stats) bool { return s.Num("friendsCount") >= 1 },
		},
		{
			ID: "community_circle", Name: "Circle of Twelve",
			Description: "Make 12 temple friends",
			Category:    CategoryCommunity, XPReward: 200,
			Condition: func(s Stats) bool { return s.Num("friendsCount") >= 12 },
		},

		// ── Premium ────────────────────────────────────────────────────────

		{
			ID: "premium_initiate", Name: "Initiate",
			Description: "Begin any premium study category",
			Category:    CategoryPremium, XPReward: 75,
			Condition: func(s Stats) bool { return premiumCategoriesAt(s, 1) >= 1 },
		},
		{
			ID: "premium_pilgrim", Name: "Pilgrim",
			Description: "Complete 3 premium study categories",
			Category:    CategoryPremium, XPReward: 300,
			Condition: func(s Stats) bool { return premiumCategoriesAt(s, 9) >= 3 },
		},
		{
			ID: "premium_master", Name: "Master of the Temple",
			Description: "Complete all 9 premium study categories",
			Category:    CategoryPremium, XPReward: 1000,
			UnlockText: "Every hall of the temple knows your name.",
			Condition:  func(s Stats) bool { return premiumCategoriesAt(s, 9) >= 9 },
		},
		{
			ID: "premium_prophet_path", Name: "Path of the Prophet",
			Description: "Finish 5 sessions at prophet difficulty",
			Category:    CategoryPremium, XPReward: 300,
			Condition: func(s Stats) bool { return s.Num("premiumDifficulty", "prophet") >= 5 },
		},

		// ── Special ────────────────────────────────────────────────────────

		{
			ID: "special_temple_guardian", Name: "Temple Guardian",
			Description: "100 trivia sessions, a 14-day streak and 20 journal entries",
			Category:    CategorySpecial, XPReward: 750,
			UnlockText: "The temple stands watch over you, as you over it.",
			Condition: func(s Stats) bool {
				return s.Num("triviaCompleted") >= 100 &&
					s.Num("loginStreak") >= 14 &&
					s.Num("journalEntries") >= 20
			},
		},
		{
			ID: "special_enlightened", Name: "Enlightened",
			Description: "Level 20, 5 hours of meditation and 9 mandalas",
			Category:    CategorySpecial, XPReward: 600,
			Condition: func(s Stats) bool {
				return s.Num("level") >= 20 &&
					s.Num("meditationMinutes") >= 300 &&
					s.Num("mandalasColored") >= 9
			},
		},
	}
}
