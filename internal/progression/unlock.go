// Package progression implements the difficulty unlock policy: passing a
// quiz at one tier permanently unlocks the next tier for that
// grade+subject pair.
package progression

// Difficulty is one of the ordered tiers gating quiz generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Dễ"
	DifficultyMedium Difficulty = "Trung bình"
	DifficultyHard   Difficulty = "Khó"
)

// PassingScore is the minimum score (out of 100) that unlocks the next tier.
const PassingScore = 70

// tierOrder maps each difficulty to its rank. Unknown values rank below
// easy so corrupt persisted state can never unlock anything.
var tierOrder = map[Difficulty]int{
	DifficultyEasy:   1,
	DifficultyMedium: 2,
	DifficultyHard:   3,
}

// Tiers lists the difficulties in ascending order.
func Tiers() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Rank returns the ordinal of d, or 0 for an unknown value.
func Rank(d Difficulty) int {
	return tierOrder[d]
}

// Next returns the tier above d, or ("", false) at the top or for an
// unknown value.
func Next(d Difficulty) (Difficulty, bool) {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium, true
	case DifficultyMedium:
		return DifficultyHard, true
	}
	return "", false
}

// Progress maps grade → subject → highest unlocked difficulty.
// Monotonically non-decreasing per (grade, subject): a tier once
// unlocked is never re-locked.
type Progress map[string]map[string]Difficulty

// Unlocked returns the highest unlocked difficulty for (grade, subject).
// Nothing stored means only the easy tier is available.
func (p Progress) Unlocked(grade, subject string) Difficulty {
	if subjects, ok := p[grade]; ok {
		if d, ok := subjects[subject]; ok && Rank(d) > 0 {
			return d
		}
	}
	return DifficultyEasy
}

// Available reports whether d is playable for (grade, subject).
func (p Progress) Available(grade, subject string, d Difficulty) bool {
	return Rank(d) > 0 && Rank(d) <= Rank(p.Unlocked(grade, subject))
}

// Apply evaluates a completed quiz against the unlock rule and returns
// the updated progress plus the newly unlocked tier, if any.
//
// The rule: score >= PassingScore at a tier below the top unlocks the
// next tier, but only if that is strictly above the current unlock.
// Applying the same result twice changes nothing, and a failing score
// never lowers what is already unlocked.
func Apply(p Progress, grade, subject string, played Difficulty, score int) (Progress, Difficulty, bool) {
	if score < PassingScore {
		return p, "", false
	}

	next, ok := Next(played)
	if !ok {
		return p, "", false
	}

	current := p.Unlocked(grade, subject)
	if Rank(next) <= Rank(current) {
		return p, "", false
	}

	out := p.clone()
	if out[grade] == nil {
		out[grade] = make(map[string]Difficulty)
	}
	out[grade][subject] = next
	return out, next, true
}

func (p Progress) clone() Progress {
	out := make(Progress, len(p))
	for grade, subjects := range p {
		out[grade] = make(map[string]Difficulty, len(subjects))
		for subject, d := range subjects {
			out[grade][subject] = d
		}
	}
	return out
}
