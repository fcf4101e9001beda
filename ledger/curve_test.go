package ledger

import "testing"

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 282},
		{3, 519},
		{4, 800},
		{10, 3162},
	}
	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelForLifetimeXP(t *testing.T) {
	tests := []struct {
		lifetime int
		want     int
	}{
		{0, 1},
		{281, 1},
		{282, 2},
		{282 + 519, 3},
		{282 + 518, 2},
	}
	for _, tt := range tests {
		if got := LevelForLifetimeXP(tt.lifetime); got != tt.want {
			t.Errorf("LevelForLifetimeXP(%d) = %d, want %d", tt.lifetime, got, tt.want)
		}
	}
}

func TestLevelReward(t *testing.T) {
	if got := LevelReward(2); got != 70 {
		t.Errorf("LevelReward(2) = %d, want 70", got)
	}
	if got := LevelReward(10); got != 150 {
		t.Errorf("LevelReward(10) = %d, want 150", got)
	}
}

func TestMemLedger_DeductInsufficient(t *testing.T) {
	l := NewMemLedger(100)
	if err := l.Deduct(150); err == nil {
		t.Fatal("deduct beyond balance succeeded")
	}
	balance, _ := l.Balance()
	if balance != 100 {
		t.Errorf("failed deduct changed balance: %d", balance)
	}
}

func TestMemLedger_AwardRaisesLevel(t *testing.T) {
	l := NewMemLedger(0)
	l.AwardXP(300, "test", "test")

	level, lifetime, err := l.Progress()
	if err != nil {
		t.Fatal(err)
	}
	if lifetime != 300 {
		t.Errorf("lifetime = %d, want 300", lifetime)
	}
	if level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
}
