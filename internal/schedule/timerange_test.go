package schedule

import (
	"errors"
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return tod
}

func rng(t *testing.T, date, start, end string) TimeRange {
	t.Helper()
	return TimeRange{Date: date, Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay error: %v", err)
	}
	if tod.Hour() != 9 || tod.Minute() != 30 {
		t.Fatalf("expected 09:30, got %s", tod)
	}

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidateRejectsReversedRange(t *testing.T) {
	if err := rng(t, "2025-03-10", "10:00", "11:00").Validate(); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}

	err := rng(t, "2025-03-10", "11:00", "10:00").Validate()
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidateRejectsZeroLengthRange(t *testing.T) {
	err := rng(t, "2025-03-10", "10:00", "10:00").Validate()
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidateRejectsBadDate(t *testing.T) {
	if err := rng(t, "10-03-2025", "10:00", "11:00").Validate(); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := rng(t, "2025-03-10", "10:00", "11:00")
	b := rng(t, "2025-03-10", "11:00", "12:00")
	if Overlaps(a, b) {
		t.Fatal("back-to-back ranges must not overlap")
	}

	c := rng(t, "2025-03-10", "10:30", "11:30")
	if !Overlaps(a, c) {
		t.Fatal("expected overlap for intersecting ranges")
	}

	d := rng(t, "2025-03-11", "10:00", "11:00")
	if Overlaps(a, d) {
		t.Fatal("ranges on different dates must not overlap")
	}
}

func TestHasAnyOverlap(t *testing.T) {
	none := []TimeRange{
		rng(t, "2025-03-10", "11:00", "12:00"),
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-10", "14:00", "15:00"),
	}
	if HasAnyOverlap(none) {
		t.Fatal("disjoint ranges reported as overlapping")
	}

	some := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-10", "14:00", "15:00"),
		rng(t, "2025-03-10", "10:30", "11:30"),
	}
	if !HasAnyOverlap(some) {
		t.Fatal("overlapping ranges not detected")
	}
}

func TestHasAnyOverlapKeepsDatesSeparate(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "2025-03-10", "10:00", "11:00"),
		rng(t, "2025-03-11", "10:30", "11:30"),
	}
	if HasAnyOverlap(ranges) {
		t.Fatal("same interval on different dates reported as overlapping")
	}
}

func TestHasAnyOverlapDoesNotMutateInput(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "2025-03-10", "14:00", "15:00"),
		rng(t, "2025-03-10", "10:00", "11:00"),
	}
	HasAnyOverlap(ranges)
	if ranges[0].Start != mustTime(t, "14:00") {
		t.Fatal("input slice was reordered")
	}
}
