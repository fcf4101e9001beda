package progression

import "strings"

// Record is the persisted progress state for one user. The id sets are
// duplicate-free: an id present here is never re-evaluated or re-awarded.
type Record struct {
	UnlockedAchievements  []string `json:"unlockedAchievements"`
	CompletedDailyQuests  []string `json:"completedDailyQuests"`
	CompletedWeeklyQuests []string `json:"completedWeeklyQuests"`
	LastDailyReset        string   `json:"lastDailyReset,omitempty"`
	LastWeeklyReset       string   `json:"lastWeeklyReset,omitempty"`
	Counters              Stats    `json:"counters"`
}

func newRecord() *Record {
	return &Record{Counters: make(Stats)}
}

// init ensures maps are non-nil after deserialization.
func (r *Record) init() {
	if r.Counters == nil {
		r.Counters = make(Stats)
	}
}

func (r *Record) hasAchievement(id string) bool {
	return containsID(r.UnlockedAchievements, id)
}

// zeroCounters removes every counter whose name carries the given scope
// prefix ("today" for daily quests, "week" for weekly quests).
func (r *Record) zeroCounters(prefix string) {
	for k := range r.Counters {
		if strings.HasPrefix(k, prefix) {
			delete(r.Counters, k)
		}
	}
}

// addCounters folds numeric deltas into the persisted counters. Nested
// maps are merged per key; anything non-numeric replaces the old value.
func (r *Record) addCounters(delta Stats) {
	for k, v := range delta {
		if f, ok := toFloat(v); ok {
			cur, _ := toFloat(r.Counters[k])
			r.Counters[k] = cur + f
			continue
		}
		if m, ok := asMap(v); ok {
			dst, isMap := asMap(r.Counters[k])
			if !isMap {
				dst = make(map[string]any, len(m))
			}
			for mk, mv := range m {
				if f, ok := toFloat(mv); ok {
					cur, _ := toFloat(dst[mk])
					dst[mk] = cur + f
				} else {
					dst[mk] = mv
				}
			}
			r.Counters[k] = dst
			continue
		}
		r.Counters[k] = v
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
