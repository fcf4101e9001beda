package progression

// Stats is an open-ended snapshot of user counters: plain numbers at the
// top level plus one level of nested maps for grouped counters such as
// premiumCategories. Values arrive as float64 after a JSON round-trip, so
// the accessors normalize int variants too. A missing key always reads as
// zero; conditions never panic on absent data.
type Stats map[string]any

// Num walks path through nested maps and returns the numeric leaf, or 0
// when any segment is missing or non-numeric.
func (s Stats) Num(path ...string) float64 {
	var cur any = map[string]any(s)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return 0
		}
		cur, ok = m[key]
		if !ok {
			return 0
		}
	}
	f, _ := toFloat(cur)
	return f
}

// Int is Num truncated to an int.
func (s Stats) Int(path ...string) int {
	return int(s.Num(path...))
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Stats:
		return m, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// mergeStats lays delta over base with shallow override semantics: a key
// present in delta wins whole, including nested maps. Neither input is
// mutated.
func mergeStats(base, delta Stats) Stats {
	merged := make(Stats, len(base)+len(delta))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range delta {
		merged[k] = v
	}
	return merged
}
