package store

import (
	"testing"

	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
)

func newEmptyEventStore(t *testing.T) (*EventStore, storage.Backend) {
	t.Helper()
	b := storage.NewMemory()
	if err := storage.Save(b, storage.KeyEvents, []model.Event{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return NewEventStore(b, NewBus(), nil), b
}

func TestEventStore_SeedOnFirstRun(t *testing.T) {
	s := NewEventStore(storage.NewMemory(), NewBus(), nil)
	if s.Len() != 3 {
		t.Fatalf("expected 3 seed events, got %d", s.Len())
	}
	if got := s.ForDate(datekey.MustParse("2025-03-15")); len(got) != 1 || got[0].Title != "Team Meeting" {
		t.Errorf("unexpected seed lookup: %+v", got)
	}
}

func TestEventStore_CorruptionFallsBackToSeed(t *testing.T) {
	b := storage.NewMemory()
	_ = b.Put(storage.KeyEvents, []byte(`[{"id":`))

	s := NewEventStore(b, NewBus(), nil)
	if s.Len() != 3 {
		t.Errorf("expected seed events after corruption, got %d", s.Len())
	}
}

func TestEventStore_AddThenQuery(t *testing.T) {
	s, _ := newEmptyEventStore(t)

	draft := model.EventDraft{
		Title:     "Demo",
		Date:      datekey.MustParse("2025-03-15"),
		StartTime: "10:00",
		EndTime:   "11:00",
		Type:      model.EventMeeting,
	}
	created := s.Add(draft)
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	byDate := s.ForDate(draft.Date)
	if len(byDate) != 1 {
		t.Fatalf("expected 1 event, got %d", len(byDate))
	}
	got := byDate[0]
	got.ID = ""
	if got != draft.WithID("") {
		t.Errorf("round trip mismatch: %+v vs %+v", got, draft)
	}

	byDay := s.ForDay(15, 2, 2025)
	if len(byDay) != 1 || byDay[0].Title != "Demo" {
		t.Errorf("ForDay(15, 2, 2025) = %+v", byDay)
	}
}

func TestEventStore_AcceptsBlankTitle(t *testing.T) {
	s, _ := newEmptyEventStore(t)
	s.Add(model.EventDraft{Date: datekey.MustParse("2025-01-01"), Type: model.EventOther})
	if s.Len() != 1 {
		t.Error("blank titles are the caller's concern; store must accept them")
	}
}

func TestEventStore_InsertionOrder(t *testing.T) {
	s, _ := newEmptyEventStore(t)
	day := datekey.MustParse("2025-03-15")
	s.Add(model.EventDraft{Title: "late", Date: day, StartTime: "15:00", EndTime: "16:00"})
	s.Add(model.EventDraft{Title: "early", Date: day, StartTime: "08:00", EndTime: "09:00"})

	got := s.ForDate(day)
	if len(got) != 2 || got[0].Title != "late" || got[1].Title != "early" {
		t.Errorf("expected insertion order, got %+v", got)
	}
}

func TestEventStore_UpdateMergesAndPersists(t *testing.T) {
	s, b := newEmptyEventStore(t)
	ev := s.Add(model.EventDraft{Title: "Lunch", Date: datekey.MustParse("2025-03-15"), Type: model.EventPersonal})

	title := "Team lunch"
	updated, ok := s.Update(ev.ID, model.EventPatch{Title: &title})
	if !ok {
		t.Fatal("expected update to find the event")
	}
	if updated.Title != "Team lunch" || updated.Type != model.EventPersonal {
		t.Errorf("unexpected merge result: %+v", updated)
	}

	reloaded := NewEventStore(b, NewBus(), nil)
	got, ok := reloaded.Get(ev.ID)
	if !ok || got.Title != "Team lunch" {
		t.Errorf("update was not persisted: %+v", got)
	}

	if _, ok := s.Update("missing", model.EventPatch{Title: &title}); ok {
		t.Error("expected not-found for unknown id")
	}
}

func TestEventStore_DeleteIsIdempotent(t *testing.T) {
	s, _ := newEmptyEventStore(t)
	keep := s.Add(model.EventDraft{Title: "keep", Date: datekey.MustParse("2025-03-15")})
	drop := s.Add(model.EventDraft{Title: "drop", Date: datekey.MustParse("2025-03-15")})

	s.Delete(drop.ID)
	once := s.All()
	s.Delete(drop.ID)
	twice := s.All()

	if len(once) != 1 || len(twice) != 1 || once[0] != twice[0] || twice[0].ID != keep.ID {
		t.Errorf("second delete changed state: %+v vs %+v", once, twice)
	}

	s.Delete("never-existed")
	if s.Len() != 1 {
		t.Error("deleting an unknown id must not change the collection")
	}
}

func TestEventStore_Between(t *testing.T) {
	s, _ := newEmptyEventStore(t)
	for _, d := range []string{"2025-03-01", "2025-03-10", "2025-03-31", "2025-04-01"} {
		s.Add(model.EventDraft{Title: d, Date: datekey.MustParse(d)})
	}
	got := s.Between(datekey.MustParse("2025-03-01"), datekey.MustParse("2025-03-31"))
	if len(got) != 3 {
		t.Errorf("expected 3 events in March, got %d", len(got))
	}
}

func TestEventStore_PublishesChanges(t *testing.T) {
	bus := NewBus()
	b := storage.NewMemory()
	s := NewEventStore(b, bus, nil)

	var changes []Change
	unsubscribe := bus.Subscribe(func(c Change) { changes = append(changes, c) })

	ev := s.Add(model.EventDraft{Title: "x", Date: datekey.MustParse("2025-03-15")})
	s.Delete(ev.ID)
	unsubscribe()
	s.Add(model.EventDraft{Title: "y", Date: datekey.MustParse("2025-03-15")})

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes before unsubscribe, got %d", len(changes))
	}
	if changes[0].Op != OpAdd || changes[0].ID != ev.ID || changes[1].Op != OpDelete {
		t.Errorf("unexpected changes: %+v", changes)
	}
}

func TestEventStore_ReadsDoNotAlias(t *testing.T) {
	s, _ := newEmptyEventStore(t)
	done := false
	day := datekey.MustParse("2025-03-15")
	ev := s.Add(model.EventDraft{Title: "Call", Date: day, Completed: &done})

	done = true
	*ev.Completed = true
	for _, got := range [][]model.Event{s.All(), s.ForDate(day), s.Between(day, day)} {
		*got[0].Completed = true
	}
	if got, _ := s.Get(ev.ID); *got.Completed {
		t.Error("callers must not be able to change stored events")
	}
}
