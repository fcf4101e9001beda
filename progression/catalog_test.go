package progression

import "testing"

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range buildCatalog() {
		if seen[a.ID] {
			t.Errorf("duplicate achievement ID: %s", a.ID)
		}
		seen[a.ID] = true
	}
	for _, board := range [][]Quest{buildDailyQuests(), buildWeeklyQuests()} {
		for _, q := range board {
			if seen[q.ID] {
				t.Errorf("duplicate quest ID: %s", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestCatalog_AllCategoriesCovered(t *testing.T) {
	all := map[Category]bool{
		CategoryTrivia:    false,
		CategoryStreak:    false,
		CategoryDevotion:  false,
		CategoryWisdom:    false,
		CategoryCommunity: false,
		CategoryPremium:   false,
		CategorySpecial:   false,
	}
	for _, a := range buildCatalog() {
		all[a.Category] = true
	}
	for cat, seen := range all {
		if !seen {
			t.Errorf("category %q has no achievements", cat)
		}
	}
}

func TestCatalog_WellFormed(t *testing.T) {
	for _, a := range buildCatalog() {
		if a.XPReward <= 0 {
			t.Errorf("%s: non-positive reward %d", a.ID, a.XPReward)
		}
		if a.Condition == nil {
			t.Errorf("%s: nil condition", a.ID)
		}
		if a.Name == "" || a.Description == "" {
			t.Errorf("%s: missing name or description", a.ID)
		}
	}
	for _, board := range [][]Quest{buildDailyQuests(), buildWeeklyQuests()} {
		for _, q := range board {
			if q.XPReward <= 0 {
				t.Errorf("%s: non-positive reward %d", q.ID, q.XPReward)
			}
			if q.Condition == nil {
				t.Errorf("%s: nil condition", q.ID)
			}
		}
	}
}

func TestCatalog_ConditionsSafeOnEmptyStats(t *testing.T) {
	empty := Stats{}
	for _, a := range buildCatalog() {
		if a.Condition(empty) {
			t.Errorf("%s passes on empty stats", a.ID)
		}
	}
}
