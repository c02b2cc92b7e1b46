package flashcards

import (
	"errors"
	"testing"

	"github.com/minhvu/hoctot/internal/store"
)

func sampleDeck() *Deck {
	return &Deck{Cards: []Card{
		{Front: "Phân số", Back: "Một phần của tổng thể", Status: StatusNew},
		{Front: "Tử số", Back: "Số ở trên gạch ngang", Status: StatusNeedsReview},
		{Front: "Mẫu số", Back: "Số ở dưới gạch ngang", Status: StatusMastered},
		{Front: "Số thập phân", Back: "Số viết theo cơ số mười", Status: StatusNeedsReview},
	}}
}

func TestSelectSubset(t *testing.T) {
	deck := sampleDeck()

	tests := []struct {
		strategy Strategy
		want     int
	}{
		{SelectAll, 4},
		{SelectNeedsReview, 2},
		{SelectNotMastered, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			cards, err := deck.SelectSubset(tt.strategy)
			if err != nil {
				t.Fatal(err)
			}
			if len(cards) != tt.want {
				t.Errorf("selected %d cards, want %d", len(cards), tt.want)
			}
		})
	}
}

func TestSelectSubset_PreservesDeckOrder(t *testing.T) {
	deck := sampleDeck()
	cards, err := deck.SelectSubset(SelectNeedsReview)
	if err != nil {
		t.Fatal(err)
	}
	if cards[0].Front != "Tử số" || cards[1].Front != "Số thập phân" {
		t.Errorf("subset out of deck order: %q, %q", cards[0].Front, cards[1].Front)
	}
}

func TestSelectSubset_Empty(t *testing.T) {
	deck := &Deck{Cards: []Card{{Front: "a", Back: "b", Status: StatusMastered}}}
	_, err := deck.SelectSubset(SelectNeedsReview)
	var empty *ErrEmptySelection
	if !errors.As(err, &empty) {
		t.Fatalf("expected *ErrEmptySelection, got %v", err)
	}
	if empty.Strategy != SelectNeedsReview {
		t.Errorf("error strategy = %q", empty.Strategy)
	}
}

func TestSelectSubset_UnknownStrategy(t *testing.T) {
	deck := sampleDeck()
	if _, err := deck.SelectSubset(Strategy("random")); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestSetStatus(t *testing.T) {
	deck := sampleDeck()
	if err := deck.SetStatus(0, StatusMastered); err != nil {
		t.Fatal(err)
	}
	if deck.Cards[0].Status != StatusMastered {
		t.Errorf("status = %q, want mastered", deck.Cards[0].Status)
	}
	if err := deck.SetStatus(99, StatusNew); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
	if err := deck.SetStatus(0, Status("forgotten")); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestReorder(t *testing.T) {
	deck := sampleDeck()
	if err := deck.Reorder(3, 0); err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(deck.Cards))
	for i, c := range deck.Cards {
		got[i] = c.Front
	}
	want := []string{"Số thập phân", "Phân số", "Tử số", "Mẫu số"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after reorder = %v, want %v", got, want)
		}
	}

	if err := deck.Reorder(1, 1); err != nil {
		t.Errorf("reorder to same position: %v", err)
	}
	if err := deck.Reorder(-1, 0); err == nil {
		t.Error("expected an error for a negative index")
	}
}

func TestExportImport_RoundTripResetsStatus(t *testing.T) {
	deck := sampleDeck()
	data, err := deck.Export()
	if err != nil {
		t.Fatal(err)
	}

	imported, err := Import(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(imported.Cards) != len(deck.Cards) {
		t.Fatalf("imported %d cards, want %d", len(imported.Cards), len(deck.Cards))
	}
	for i, c := range imported.Cards {
		if c.Front != deck.Cards[i].Front || c.Back != deck.Cards[i].Back {
			t.Errorf("card %d content changed: %+v", i, c)
		}
		if c.Status != StatusNew {
			t.Errorf("card %d status = %q, want new after import", i, c.Status)
		}
	}
}

func TestImport_BadJSON(t *testing.T) {
	if _, err := Import([]byte("{not json")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRecords_RoundTrip(t *testing.T) {
	deck := sampleDeck()
	back := FromRecords(deck.ToRecords())
	for i, c := range back.Cards {
		if c != deck.Cards[i] {
			t.Errorf("card %d changed through records: %+v vs %+v", i, c, deck.Cards[i])
		}
	}
}

func TestFromRecords_UnknownStatusFallsBack(t *testing.T) {
	deck := FromRecords([]store.CardRecord{{Front: "a", Back: "b", Status: "archived"}})
	if deck.Cards[0].Status != StatusNew {
		t.Errorf("status = %q, want new", deck.Cards[0].Status)
	}
}
