package flashcards

import (
	"math/rand/v2"

	"github.com/minhvu/hoctot/internal/quizgen"
)

// maxDistractors is the number of wrong options sampled per question.
const maxDistractors = 3

// ToQuiz converts up to count cards into multiple-choice questions. The
// chosen card's back text is the correct option; up to 3 distractors
// are the back texts of other cards, sampled without replacement. With
// fewer than 3 other cards the question simply has fewer options.
//
// The rand source is injected so tests can assert exact outcomes. It
// never produces more questions than there are cards.
func ToQuiz(cards []Card, count int, rng *rand.Rand) []quizgen.Question {
	if count > len(cards) {
		count = len(cards)
	}
	if count <= 0 {
		return nil
	}

	questions := make([]quizgen.Question, 0, count)
	for i := 0; i < count; i++ {
		card := cards[i]
		options, correct := buildOptions(card, cards, rng)
		questions = append(questions, quizgen.Question{
			ID:           i + 1,
			Type:         quizgen.TypeMultipleChoice,
			Prompt:       card.Front,
			Options:      options,
			CorrectIndex: correct,
		})
	}
	return questions
}

// buildOptions samples distractors from the other cards and shuffles
// the correct answer in among them. Candidates are deduplicated by back
// text so no distractor can equal the correct option or another
// distractor.
func buildOptions(card Card, cards []Card, rng *rand.Rand) ([]string, int) {
	seen := map[string]bool{card.Back: true}
	var others []string
	for _, c := range cards {
		if seen[c.Back] {
			continue
		}
		seen[c.Back] = true
		others = append(others, c.Back)
	}

	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > maxDistractors {
		others = others[:maxDistractors]
	}

	options := append([]string{card.Back}, others...)
	correct := 0

	// Move the correct option to a random position.
	if len(options) > 1 {
		swap := rng.IntN(len(options))
		options[0], options[swap] = options[swap], options[0]
		correct = swap
	}

	return options, correct
}
