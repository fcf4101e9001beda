package progression

import "testing"

func TestStats_Num(t *testing.T) {
	s := Stats{
		"triviaCompleted": 12.0,
		"answersTotal":    40,
		"premiumCategories": map[string]any{
			"genesis": 9.0,
		},
	}

	tests := []struct {
		name string
		path []string
		want float64
	}{
		{"float value", []string{"triviaCompleted"}, 12},
		{"int value", []string{"answersTotal"}, 40},
		{"nested value", []string{"premiumCategories", "genesis"}, 9},
		{"absent key", []string{"meditationMinutes"}, 0},
		{"absent nested key", []string{"premiumCategories", "exodus"}, 0},
		{"path through scalar", []string{"triviaCompleted", "deeper"}, 0},
		{"path through absent map", []string{"nothing", "here"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Num(tt.path...); got != tt.want {
				t.Errorf("Num(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMergeStats_DeltaWins(t *testing.T) {
	base := Stats{"a": 1.0, "b": 2.0}
	delta := Stats{"b": 9.0, "c": 3.0}

	merged := mergeStats(base, delta)
	if merged.Num("a") != 1 || merged.Num("b") != 9 || merged.Num("c") != 3 {
		t.Errorf("merged = %v", merged)
	}
	if base.Num("b") != 2 {
		t.Error("mergeStats mutated base")
	}
}

func TestRecord_AddCountersNestedMerge(t *testing.T) {
	r := newRecord()
	r.addCounters(Stats{"premiumCategories": map[string]any{"genesis": 1.0}})
	r.addCounters(Stats{"premiumCategories": map[string]any{"genesis": 2.0, "exodus": 1.0}})

	s := Stats(r.Counters)
	if got := s.Num("premiumCategories", "genesis"); got != 3 {
		t.Errorf("genesis = %v, want 3", got)
	}
	if got := s.Num("premiumCategories", "exodus"); got != 1 {
		t.Errorf("exodus = %v, want 1", got)
	}
}

func TestRecord_ZeroCountersByPrefix(t *testing.T) {
	r := newRecord()
	r.addCounters(Stats{
		"todayTriviaGames": 3.0,
		"weekTriviaGames":  10.0,
		"triviaCompleted":  42.0,
	})

	r.zeroCounters("today")
	s := Stats(r.Counters)
	if s.Num("todayTriviaGames") != 0 {
		t.Error("today counter survived")
	}
	if s.Num("weekTriviaGames") != 10 || s.Num("triviaCompleted") != 42 {
		t.Error("unscoped counters were zeroed")
	}
}
