// Package flashcards tracks per-card mastery status for an ordered deck
// and can turn a filtered subset back into a multiple-choice quiz.
package flashcards

import (
	"encoding/json"
	"fmt"

	"github.com/minhvu/hoctot/internal/store"
)

// Status is the tri-state mastery status of a card. Transitions happen
// only through explicit user action, never automatically.
type Status string

const (
	StatusNew         Status = "new"
	StatusNeedsReview Status = "needs-review"
	StatusMastered    Status = "mastered"
)

// KnownStatus reports whether s is a valid status value.
func KnownStatus(s Status) bool {
	switch s {
	case StatusNew, StatusNeedsReview, StatusMastered:
		return true
	}
	return false
}

// Card is a front/back pair for recall practice.
type Card struct {
	Front  string
	Back   string
	Status Status
}

// Deck is an ordered, user-reorderable set of cards. Order is
// significant and persisted.
type Deck struct {
	Cards []Card
}

// Strategy selects a subset of a deck.
type Strategy string

const (
	// SelectAll keeps every card.
	SelectAll Strategy = "all"

	// SelectNeedsReview keeps cards explicitly marked for review.
	SelectNeedsReview Strategy = "needsReview"

	// SelectNotMastered keeps everything except mastered cards.
	SelectNotMastered Strategy = "notMastered"
)

// ErrEmptySelection indicates a filter matched no cards; a quiz cannot
// be built from zero questions.
type ErrEmptySelection struct {
	Strategy Strategy
}

func (e *ErrEmptySelection) Error() string {
	return fmt.Sprintf("no cards match selection %q", e.Strategy)
}

// SetStatus overwrites the status of the card at index i. Always
// succeeds for a valid index.
func (d *Deck) SetStatus(i int, s Status) error {
	if i < 0 || i >= len(d.Cards) {
		return fmt.Errorf("card index %d outside deck of %d", i, len(d.Cards))
	}
	if !KnownStatus(s) {
		return fmt.Errorf("unknown card status %q", s)
	}
	d.Cards[i].Status = s
	return nil
}

// Reorder moves the card at from to position to, preserving the
// relative order of all other cards. No-op when from == to.
func (d *Deck) Reorder(from, to int) error {
	n := len(d.Cards)
	if from < 0 || from >= n {
		return fmt.Errorf("from index %d outside deck of %d", from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("to index %d outside deck of %d", to, n)
	}
	if from == to {
		return nil
	}

	card := d.Cards[from]
	rest := append(d.Cards[:from:from], d.Cards[from+1:]...)
	d.Cards = append(rest[:to:to], append([]Card{card}, rest[to:]...)...)
	return nil
}

// SelectSubset returns the cards matching the strategy, in deck order.
// An empty result is *ErrEmptySelection.
func (d *Deck) SelectSubset(strategy Strategy) ([]Card, error) {
	var keep func(Card) bool
	switch strategy {
	case SelectAll:
		keep = func(Card) bool { return true }
	case SelectNeedsReview:
		keep = func(c Card) bool { return c.Status == StatusNeedsReview }
	case SelectNotMastered:
		keep = func(c Card) bool { return c.Status != StatusMastered }
	default:
		return nil, fmt.Errorf("unknown selection strategy %q", strategy)
	}

	var out []Card
	for _, c := range d.Cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, &ErrEmptySelection{Strategy: strategy}
	}
	return out, nil
}

// exportCard is the external JSON shape: front/back only, status is
// intentionally not part of the interchange format.
type exportCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Export serializes the deck's ordered front/back pairs as JSON.
func (d *Deck) Export() ([]byte, error) {
	cards := make([]exportCard, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = exportCard{Front: c.Front, Back: c.Back}
	}
	return json.MarshalIndent(cards, "", "  ")
}

// Import parses an exported deck. All statuses reset to new.
func Import(data []byte) (*Deck, error) {
	var cards []exportCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}

	d := &Deck{Cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.Cards[i] = Card{Front: c.Front, Back: c.Back, Status: StatusNew}
	}
	return d, nil
}

// ToRecords converts the deck for persistence.
func (d *Deck) ToRecords() []store.CardRecord {
	records := make([]store.CardRecord, len(d.Cards))
	for i, c := range d.Cards {
		records[i] = store.CardRecord{Front: c.Front, Back: c.Back, Status: string(c.Status)}
	}
	return records
}

// FromRecords rebuilds a deck from persisted records. An unknown stored
// status falls back to new.
func FromRecords(records []store.CardRecord) *Deck {
	d := &Deck{Cards: make([]Card, len(records))}
	for i, r := range records {
		status := Status(r.Status)
		if !KnownStatus(status) {
			status = StatusNew
		}
		d.Cards[i] = Card{Front: r.Front, Back: r.Back, Status: status}
	}
	return d
}
