package progression

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"divinetemple/ledger"
	"divinetemple/notify"
	"divinetemple/store"
)

// Engine evaluates the fixed achievement and quest catalogs against user
// stats, with once-only unlock bookkeeping and time-windowed quest resets.
// One evaluation pass is atomic with respect to other engine calls; the
// in-memory record is authoritative and persistence is best effort.
type Engine struct {
	mu       sync.Mutex
	ledger   ledger.Ledger
	store    store.Store
	notifier notify.Notifier
	key      string
	record   *Record

	catalog []Achievement
	daily   []Quest
	weekly  []Quest

	now func() time.Time
}

// NewEngine loads (or creates) the progress record stored under key.
func NewEngine(led ledger.Ledger, st store.Store, n notify.Notifier, key string) *Engine {
	e := &Engine{
		ledger:   led,
		store:    st,
		notifier: n,
		key:      key,
		catalog:  buildCatalog(),
		daily:    buildDailyQuests(),
		weekly:   buildWeeklyQuests(),
		now:      time.Now,
	}
	e.record = e.loadRecord()
	return e
}

func (e *Engine) loadRecord() *Record {
	data, err := e.store.Load(e.key)
	if err != nil {
		log.Printf("progression: load failed for %s, starting fresh: %v", e.key, err)
		return newRecord()
	}
	if data == nil {
		return newRecord()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("progression: corrupt record for %s, starting fresh: %v", e.key, err)
		return newRecord()
	}
	rec.init()
	return &rec
}

// EvaluateAchievements checks every not-yet-unlocked achievement against
// the persisted counters overlaid with delta. Each newly passing
// achievement is unlocked at most once, awarded its XP through the ledger
// and returned. State is persisted once per non-empty pass.
func (e *Engine) EvaluateAchievements(delta Stats) []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	merged := e.snapshotLocked(delta)
	var unlocked []Achievement
	for _, a := range e.catalog {
		if e.record.hasAchievement(a.ID) {
			continue
		}
		if a.Condition(merged) {
			e.record.UnlockedAchievements = append(e.record.UnlockedAchievements, a.ID)
			unlocked = append(unlocked, a)
			e.award(a.XPReward, string(a.Category)+": "+a.Name, "achievement")
		}
	}

	if len(unlocked) > 0 {
		e.persistLocked()
		for _, a := range unlocked {
			e.notifier.Notify(notify.KindAchievement, a)
		}
	}
	return unlocked
}

// EvaluateDailyQuests runs the daily reset transition first, then checks
// the daily catalog. A quest completes at most once per day.
func (e *Engine) EvaluateDailyQuests(delta Stats) []Quest {
	e.mu.Lock()
	defer e.mu.Unlock()

	reset := e.resetDailyLocked()
	completed := e.evaluateQuestsLocked(e.daily, &e.record.CompletedDailyQuests, delta, "Daily Quest", notify.KindDailyQuest)
	if reset || len(completed) > 0 {
		e.persistLocked()
	}
	return completed
}

// EvaluateWeeklyQuests is EvaluateDailyQuests with a Monday-keyed window.
func (e *Engine) EvaluateWeeklyQuests(delta Stats) []Quest {
	e.mu.Lock()
	defer e.mu.Unlock()

	reset := e.resetWeeklyLocked()
	completed := e.evaluateQuestsLocked(e.weekly, &e.record.CompletedWeeklyQuests, delta, "Weekly Quest", notify.KindWeeklyQuest)
	if reset || len(completed) > 0 {
		e.persistLocked()
	}
	return completed
}

func (e *Engine) evaluateQuestsLocked(quests []Quest, completed *[]string, delta Stats, label string, kind notify.Kind) []Quest {
	merged := e.snapshotLocked(delta)
	var done []Quest
	for _, q := range quests {
		if containsID(*completed, q.ID) {
			continue
		}
		if q.Condition(merged) {
			*completed = append(*completed, q.ID)
			done = append(done, q)
			e.award(q.XPReward, label+": "+q.Name, "quest")
		}
	}
	for _, q := range done {
		e.notifier.Notify(kind, q)
	}
	return done
}

// resetDailyLocked clears the daily scope when the calendar date has
// changed since the stored reset key. Idempotent within a day.
func (e *Engine) resetDailyLocked() bool {
	today := dateKey(e.now())
	if e.record.LastDailyReset == today {
		return false
	}
	// A fresh record has no reset key yet; stamp the window without
	// wiping counters that arrived earlier in this same session.
	if e.record.LastDailyReset != "" {
		e.record.CompletedDailyQuests = e.record.CompletedDailyQuests[:0]
		e.record.zeroCounters("today")
	}
	e.record.LastDailyReset = today
	return true
}

func (e *Engine) resetWeeklyLocked() bool {
	week := dateKey(weekStartOf(e.now()))
	if e.record.LastWeeklyReset == week {
		return false
	}
	if e.record.LastWeeklyReset != "" {
		e.record.CompletedWeeklyQuests = e.record.CompletedWeeklyQuests[:0]
		e.record.zeroCounters("week")
	}
	e.record.LastWeeklyReset = week
	return true
}

// AddCounters folds activity deltas into the persisted counters (e.g.
// after a trivia round or journal entry) and persists the record. The
// period windows roll first, so the first activity of a new day or week
// lands in the fresh window instead of being zeroed by its own reset.
func (e *Engine) AddCounters(delta Stats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetDailyLocked()
	e.resetWeeklyLocked()
	e.record.addCounters(delta)
	e.persistLocked()
}

// SetCounters assigns gauge-style counters (e.g. a login streak) whose
// current value replaces the stored one instead of adding to it.
func (e *Engine) SetCounters(values Stats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range values {
		e.record.Counters[k] = v
	}
	e.persistLocked()
}

// snapshotLocked merges persisted counters, ledger-derived stats and the
// caller's delta. Delta keys win with shallow override semantics.
func (e *Engine) snapshotLocked(delta Stats) Stats {
	base := make(Stats, len(e.record.Counters)+2)
	for k, v := range e.record.Counters {
		base[k] = v
	}
	level, lifetime, err := e.ledger.Progress()
	if err != nil {
		log.Printf("progression: ledger unavailable for %s: %v", e.key, err)
	} else {
		base["level"] = float64(level)
		base["totalXP"] = float64(lifetime)
	}
	if delta == nil {
		return base
	}
	return mergeStats(base, delta)
}

func (e *Engine) award(amount int, reason, kind string) {
	if err := e.ledger.AwardXP(amount, reason, kind); err != nil {
		log.Printf("progression: xp award failed (%s): %v", reason, err)
	}
}

// persistLocked is best effort: a failed save keeps the in-memory unlock
// and logs, per the recoverable-durability contract.
func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.record)
	if err != nil {
		log.Printf("progression: marshal failed for %s: %v", e.key, err)
		return
	}
	if err := e.store.Save(e.key, data); err != nil {
		log.Printf("progression: save failed for %s (state kept in memory): %v", e.key, err)
	}
}

// Catalog returns a copy of the achievement catalog.
func (e *Engine) Catalog() []Achievement {
	out := make([]Achievement, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// DailyQuests and WeeklyQuests return copies of the quest catalogs.
func (e *Engine) DailyQuests() []Quest {
	out := make([]Quest, len(e.daily))
	copy(out, e.daily)
	return out
}

func (e *Engine) WeeklyQuests() []Quest {
	out := make([]Quest, len(e.weekly))
	copy(out, e.weekly)
	return out
}

// Snapshot returns a copy of the persisted record for read-only callers.
func (e *Engine) Snapshot() Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := *e.record
	rec.UnlockedAchievements = append([]string(nil), e.record.UnlockedAchievements...)
	rec.CompletedDailyQuests = append([]string(nil), e.record.CompletedDailyQuests...)
	rec.CompletedWeeklyQuests = append([]string(nil), e.record.CompletedWeeklyQuests...)
	rec.Counters = make(Stats, len(e.record.Counters))
	for k, v := range e.record.Counters {
		rec.Counters[k] = v
	}
	return rec
}
