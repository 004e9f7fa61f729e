package schedule

import (
	"errors"
	"sort"
	"testing"
)

func sortedSet(ranges []TimeRange) []TimeRange {
	out := make([]TimeRange, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out
}

func sameSet(a, b []TimeRange) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedSet(a), sortedSet(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func TestReplaceForDatesTouchesOnlySelectedDates(t *testing.T) {
	current := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-11", "09:00", "10:00"),
		rng(t, "2025-03-12", "16:00", "17:00"),
	}

	result, err := ReplaceForDates(current, []string{"2025-03-10"}, []TimeRange{
		rng(t, "2025-03-10", "14:00", "15:00"),
	})
	if err != nil {
		t.Fatalf("ReplaceForDates error: %v", err)
	}

	want := []TimeRange{
		rng(t, "2025-03-10", "14:00", "15:00"),
		rng(t, "2025-03-11", "09:00", "10:00"),
		rng(t, "2025-03-12", "16:00", "17:00"),
	}
	if !sameSet(result, want) {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestReplaceForDatesEmptyRangesClearsDate(t *testing.T) {
	current := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-11", "09:00", "10:00"),
	}

	result, err := ReplaceForDates(current, []string{"2025-03-10"}, nil)
	if err != nil {
		t.Fatalf("ReplaceForDates error: %v", err)
	}

	want := []TimeRange{rng(t, "2025-03-11", "09:00", "10:00")}
	if !sameSet(result, want) {
		t.Fatalf("expected date cleared, got %v", result)
	}
}

func TestReplaceForDatesIdempotent(t *testing.T) {
	current := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-11", "09:00", "10:00"),
	}
	dates := []string{"2025-03-10"}
	repl := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-10", "11:00", "12:00"),
	}

	once, err := ReplaceForDates(current, dates, repl)
	if err != nil {
		t.Fatalf("first replace error: %v", err)
	}
	twice, err := ReplaceForDates(once, dates, repl)
	if err != nil {
		t.Fatalf("second replace error: %v", err)
	}

	if !sameSet(once, twice) {
		t.Fatalf("replace not idempotent: %v vs %v", once, twice)
	}
}

func TestReplaceForDatesRejectsInvalidRangeWithoutMutation(t *testing.T) {
	current := []TimeRange{rng(t, "2025-03-10", "10:00", "11:00")}

	_, err := ReplaceForDates(current, []string{"2025-03-10"}, []TimeRange{
		rng(t, "2025-03-10", "10:00", "10:00"),
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	if len(current) != 1 || current[0] != rng(t, "2025-03-10", "10:00", "11:00") {
		t.Fatal("input set was mutated on failed replace")
	}
}

func TestReplaceForDatesRejectsOverlapWithinDate(t *testing.T) {
	_, err := ReplaceForDates(nil, []string{"2025-03-10"}, []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-10", "10:30", "11:30"),
	})
	if !errors.Is(err, ErrOverlappingRanges) {
		t.Fatalf("expected ErrOverlappingRanges, got %v", err)
	}
}

func TestReplaceForDatesAllowsBackToBackRanges(t *testing.T) {
	result, err := ReplaceForDates(nil, []string{"2025-03-10"}, []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-10", "11:00", "12:00"),
	})
	if err != nil {
		t.Fatalf("back-to-back ranges rejected: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(result))
	}
}
