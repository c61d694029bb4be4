package service

import (
	"testing"
	"time"

	"team-scheduler-api/modules/availability/entity"
)

// mondayMorning is a fixed Monday 08:00 UTC anchor.
var mondayMorning = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

func testWindow(now time.Time, days int) entity.SearchWindow {
	return entity.SearchWindow{
		Now:                now,
		DaysToCheck:        days,
		BusinessHoursStart: 9,
		BusinessHoursEnd:   17,
		Location:           time.UTC,
	}
}

func busy(startHour, startMin, endHour, endMin int) entity.BusyInterval {
	day := mondayMorning
	return entity.BusyInterval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC),
		End:   time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC),
	}
}

func TestFindSlotsEmptyCalendars(t *testing.T) {
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{
		"a@example.com": {},
		"b@example.com": {},
	}, 30, testWindow(mondayMorning, 7), 10)

	if len(slots) != 10 {
		t.Fatalf("expected 10 slots (cap), got %d", len(slots))
	}

	first := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	if !slots[0].Start.Equal(first) {
		t.Errorf("first slot should start at business open %v, got %v", first, slots[0].Start)
	}

	for i, s := range slots {
		if got := s.End.Sub(s.Start); got != 30*time.Minute {
			t.Errorf("slot %d has duration %v, want 30m", i, got)
		}
		if i > 0 && !slots[i-1].Start.Before(s.Start) {
			t.Errorf("slots out of chronological order at index %d", i)
		}
	}
}

func TestFindSlotsRespectsCap(t *testing.T) {
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{}, 30, testWindow(mondayMorning, 7), 3)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
}

func TestFindSlotsSlotMayEndExactlyAtClose(t *testing.T) {
	// Whole day busy except the final hour: the 16:00-17:00 slot is valid.
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{
		"a@example.com": {busy(9, 0, 16, 0)},
	}, 60, testWindow(mondayMorning, 1), 10)

	if len(slots) != 1 {
		t.Fatalf("expected exactly one slot, got %d", len(slots))
	}
	wantStart := time.Date(2026, time.January, 5, 16, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, time.January, 5, 17, 0, 0, 0, time.UTC)
	if !slots[0].Start.Equal(wantStart) || !slots[0].End.Equal(wantEnd) {
		t.Errorf("got slot %v-%v, want %v-%v", slots[0].Start, slots[0].End, wantStart, wantEnd)
	}
}

func TestFindSlotsTouchingBoundariesAreFree(t *testing.T) {
	// Busy 10:00-10:30. The 09:30-10:00 and 10:30-11:00 slots touch it and
	// must stay free; 10:00-10:30 conflicts.
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{
		"a@example.com": {busy(10, 0, 10, 30)},
	}, 30, testWindow(mondayMorning, 1), 20)

	starts := make(map[string]bool, len(slots))
	for _, s := range slots {
		starts[s.Start.Format("15:04")] = true
	}

	if !starts["09:30"] {
		t.Error("slot ending exactly at busy start should be free")
	}
	if !starts["10:30"] {
		t.Error("slot starting exactly at busy end should be free")
	}
	if starts["10:00"] {
		t.Error("slot overlapping busy interval must be excluded")
	}
}

func TestFindSlotsPartialOverlapConflicts(t *testing.T) {
	// Busy 10:15-10:45 knocks out both the 10:00 and 10:30 candidates.
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{
		"a@example.com": {busy(10, 15, 10, 45)},
	}, 30, testWindow(mondayMorning, 1), 20)

	for _, s := range slots {
		hm := s.Start.Format("15:04")
		if hm == "10:00" || hm == "10:30" {
			t.Errorf("slot at %s overlaps busy 10:15-10:45", hm)
		}
	}
}

func TestFindSlotsIntersectsAllParticipants(t *testing.T) {
	// A is busy all morning, B all afternoon; only 12:00-13:00 remains.
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{
		"a@example.com": {busy(9, 0, 12, 0)},
		"b@example.com": {busy(13, 0, 17, 0)},
	}, 30, testWindow(mondayMorning, 1), 20)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots (12:00, 12:30), got %d", len(slots))
	}
	if got := slots[0].Start.Format("15:04"); got != "12:00" {
		t.Errorf("first slot at %s, want 12:00", got)
	}
	if got := slots[1].Start.Format("15:04"); got != "12:30" {
		t.Errorf("second slot at %s, want 12:30", got)
	}
}

func TestFindSlotsSkipsWeekends(t *testing.T) {
	// Friday 16:45: no Friday candidate remains, Saturday and Sunday are
	// skipped, so the first slot lands Monday 09:00.
	fridayLate := time.Date(2026, time.January, 9, 16, 45, 0, 0, time.UTC)
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{}, 30, testWindow(fridayLate, 7), 1)

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	want := time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)
	if !slots[0].Start.Equal(want) {
		t.Errorf("first slot %v, want Monday %v", slots[0].Start, want)
	}
	if slots[0].Start.Weekday() == time.Saturday || slots[0].Start.Weekday() == time.Sunday {
		t.Error("slot landed on a weekend")
	}
}

func TestFindSlotsSkipsPastCandidates(t *testing.T) {
	// Anchor mid-day: morning candidates on day zero are in the past.
	midday := time.Date(2026, time.January, 5, 13, 10, 0, 0, time.UTC)
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{}, 30, testWindow(midday, 1), 20)

	if len(slots) == 0 {
		t.Fatal("expected afternoon slots")
	}
	if got := slots[0].Start.Format("15:04"); got != "13:30" {
		t.Errorf("first slot at %s, want 13:30", got)
	}
	for _, s := range slots {
		if s.Start.Before(midday) {
			t.Errorf("slot %v starts before the anchor", s.Start)
		}
	}
}

func TestFindSlotsLongMeetingStopsEarlyInDay(t *testing.T) {
	// A 3-hour meeting cannot start after 14:00.
	sf := NewSlotFinder()
	slots := sf.FindSlots(map[string][]entity.BusyInterval{}, 180, testWindow(mondayMorning, 1), 50)

	for _, s := range slots {
		if s.Start.Hour() > 14 || (s.Start.Hour() == 14 && s.Start.Minute() > 0) {
			t.Errorf("slot starting %v cannot fit 3h inside business hours", s.Start)
		}
	}
	last := slots[len(slots)-1]
	if got := last.Start.Format("15:04"); got != "14:00" {
		t.Errorf("last start at %s, want 14:00", got)
	}
}

func TestFindSlotsDeterministic(t *testing.T) {
	sf := NewSlotFinder()
	busySet := map[string][]entity.BusyInterval{
		"a@example.com": {busy(9, 0, 10, 0), busy(14, 0, 15, 30)},
		"b@example.com": {busy(11, 30, 12, 0)},
	}

	first := sf.FindSlots(busySet, 30, testWindow(mondayMorning, 7), 10)
	for i := 0; i < 5; i++ {
		again := sf.FindSlots(busySet, 30, testWindow(mondayMorning, 7), 10)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d slots, first run %d", i, len(again), len(first))
		}
		for j := range first {
			if !first[j].Start.Equal(again[j].Start) || !first[j].End.Equal(again[j].End) {
				t.Fatalf("run %d slot %d differs", i, j)
			}
		}
	}
}
