package progression

import "testing"

func TestApply_Unlock(t *testing.T) {
	tests := []struct {
		name       string
		start      Progress
		played     Difficulty
		score      int
		wantTier   Difficulty
		wantChange bool
	}{
		{
			name:       "passing easy unlocks medium",
			start:      Progress{},
			played:     DifficultyEasy,
			score:      80,
			wantTier:   DifficultyMedium,
			wantChange: true,
		},
		{
			name:       "exact passing score unlocks",
			start:      Progress{},
			played:     DifficultyEasy,
			score:      PassingScore,
			wantTier:   DifficultyMedium,
			wantChange: true,
		},
		{
			name:       "failing score changes nothing",
			start:      Progress{},
			played:     DifficultyEasy,
			score:      40,
			wantChange: false,
		},
		{
			name:       "one below passing changes nothing",
			start:      Progress{},
			played:     DifficultyEasy,
			score:      PassingScore - 1,
			wantChange: false,
		},
		{
			name:       "passing medium unlocks hard",
			start:      Progress{"Lớp 6": {"Toán": DifficultyMedium}},
			played:     DifficultyMedium,
			score:      100,
			wantTier:   DifficultyHard,
			wantChange: true,
		},
		{
			name:       "passing hard has nothing above",
			start:      Progress{"Lớp 6": {"Toán": DifficultyHard}},
			played:     DifficultyHard,
			score:      100,
			wantChange: false,
		},
		{
			name:       "repeating an already-unlocked result is a no-op",
			start:      Progress{"Lớp 6": {"Toán": DifficultyMedium}},
			played:     DifficultyEasy,
			score:      95,
			wantChange: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, tier, changed := Apply(tt.start, "Lớp 6", "Toán", tt.played, tt.score)
			if changed != tt.wantChange {
				t.Fatalf("changed = %v, want %v", changed, tt.wantChange)
			}
			if !tt.wantChange {
				if out.Unlocked("Lớp 6", "Toán") != tt.start.Unlocked("Lớp 6", "Toán") {
					t.Error("unlock level moved without a change")
				}
				return
			}
			if tier != tt.wantTier {
				t.Errorf("unlocked tier = %q, want %q", tier, tt.wantTier)
			}
			if out.Unlocked("Lớp 6", "Toán") != tt.wantTier {
				t.Errorf("Unlocked = %q, want %q", out.Unlocked("Lớp 6", "Toán"), tt.wantTier)
			}
		})
	}
}

func TestApply_NeverLowers(t *testing.T) {
	start := Progress{"Lớp 6": {"Toán": DifficultyHard}}
	out, _, changed := Apply(start, "Lớp 6", "Toán", DifficultyEasy, 0)
	if changed {
		t.Fatal("failing score reported a change")
	}
	if out.Unlocked("Lớp 6", "Toán") != DifficultyHard {
		t.Errorf("Unlocked = %q, want hard to stay", out.Unlocked("Lớp 6", "Toán"))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	start := Progress{"Lớp 6": {"Toán": DifficultyEasy}}
	Apply(start, "Lớp 6", "Toán", DifficultyEasy, 100)
	if start.Unlocked("Lớp 6", "Toán") != DifficultyEasy {
		t.Error("input progress was mutated")
	}
}

func TestApply_PairsAreIndependent(t *testing.T) {
	out, _, changed := Apply(Progress{}, "Lớp 7", "Ngữ văn", DifficultyEasy, 90)
	if !changed {
		t.Fatal("expected unlock")
	}
	if out.Unlocked("Lớp 7", "Toán") != DifficultyEasy {
		t.Error("unlock leaked to another subject")
	}
	if out.Unlocked("Lớp 6", "Ngữ văn") != DifficultyEasy {
		t.Error("unlock leaked to another grade")
	}
}

func TestUnlocked_Defaults(t *testing.T) {
	var p Progress
	if p.Unlocked("Lớp 9", "Toán") != DifficultyEasy {
		t.Error("empty progress should unlock only the easy tier")
	}

	corrupt := Progress{"Lớp 6": {"Toán": Difficulty("Siêu khó")}}
	if corrupt.Unlocked("Lớp 6", "Toán") != DifficultyEasy {
		t.Error("unknown stored difficulty should fall back to easy")
	}
}

func TestAvailable(t *testing.T) {
	p := Progress{"Lớp 6": {"Toán": DifficultyMedium}}
	if !p.Available("Lớp 6", "Toán", DifficultyEasy) {
		t.Error("easy should always be available")
	}
	if !p.Available("Lớp 6", "Toán", DifficultyMedium) {
		t.Error("unlocked tier should be available")
	}
	if p.Available("Lớp 6", "Toán", DifficultyHard) {
		t.Error("locked tier should not be available")
	}
	if p.Available("Lớp 6", "Toán", Difficulty("Siêu khó")) {
		t.Error("unknown tier should never be available")
	}
}

func TestNext(t *testing.T) {
	if next, ok := Next(DifficultyEasy); !ok || next != DifficultyMedium {
		t.Errorf("Next(easy) = %q, %v", next, ok)
	}
	if next, ok := Next(DifficultyMedium); !ok || next != DifficultyHard {
		t.Errorf("Next(medium) = %q, %v", next, ok)
	}
	if _, ok := Next(DifficultyHard); ok {
		t.Error("Next(hard) should report no higher tier")
	}
	if _, ok := Next(Difficulty("bogus")); ok {
		t.Error("Next(unknown) should report no tier")
	}
}
