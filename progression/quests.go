package progression

import "time"

// Quest describes a daily or weekly goal. Quest-scoped counters carry the
// scope prefix in their name ("today" / "week") so a period reset can zero
// them wholesale.
type Quest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
	Condition   func(Stats) bool `json:"-"`
}

// AllDailyQuests and AllWeeklyQuests return the full quest boards.
func AllDailyQuests() []Quest {
	return buildDailyQuests()
}

func AllWeeklyQuests() []Quest {
	return buildWeeklyQuests()
}

func buildDailyQuests() []Quest {
	return []Quest{
		{
			ID: "daily_seeker", Name: "Daily Seeker",
			Description: "Play 3 trivia rounds today",
			XPReward:    30,
			Condition:   func(s Stats) bool { return s.Num("todayTriviaGames") >= 3 },
		},
		{
			ID: "daily_scribe", Name: "Daily Scribe",
			Description: "Write a journal entry today",
			XPReward:    25,
			Condition:   func(s Stats) bool { return s.Num("todayJournalEntries") >= 1 },
		},
		{
			ID: "daily_stillness", Name: "Daily Stillness",
			Description: "Meditate for 10 minutes today",
			XPReward:    25,
			Condition:   func(s Stats) bool { return s.Num("todayMeditationMinutes") >= 10 },
		},
		{
			ID: "daily_flawless", Name: "Daily Flawless",
			Description: "Earn a perfect score today",
			XPReward:    50,
			Condition:   func(s Stats) bool { return s.Num("todayPerfectScores") >= 1 },
		},
	}
}

func buildWeeklyQuests() []Quest {
	return []Quest{
		{
			ID: "week_scholar", Name: "Weekly Scholar",
			Description: "Play 25 trivia rounds this week",
			XPReward:    150,
			Condition:   func(s Stats) bool { return s.Num("weekTriviaGames") >= 25 },
		},
		{
			ID: "week_devoted", Name: "Weekly Devotion",
			Description: "Write 5 journal entries this week",
			XPReward:    100,
			Condition:   func(s Stats) bool { return s.Num("weekJournalEntries") >= 5 },
		},
		{
			ID: "week_perfect_hard", Name: "Trial of Fire",
			Description: "Earn 5 perfect scores on hard difficulty this week",
			XPReward:    250,
			Condition:   func(s Stats) bool { return s.Num("weekPerfectHard") >= 5 },
		},
		{
			ID: "week_artist", Name: "Temple Artist",
			Description: "Color 3 mandalas this week",
			XPReward:    100,
			Condition:   func(s Stats) bool { return s.Num("weekMandalas") >= 3 },
		},
	}
}

// dateKey renders the calendar date used for daily reset comparison.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// weekStartOf returns the Monday on or before t, truncated to midnight in
// t's location. Sunday counts as six days after Monday, not one before.
func weekStartOf(t time.Time) time.Time {
	back := int(t.Weekday()) - int(time.Monday)
	if back < 0 {
		back = 6
	}
	y, m, d := t.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
