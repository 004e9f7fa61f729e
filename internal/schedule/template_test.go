package schedule

import (
	"testing"
	"time"
)

func span(t *testing.T, start, end string) Span {
	t.Helper()
	return Span{Start: mustTime(t, start), End: mustTime(t, end)}
}

func allWeekdays() map[time.Weekday]bool {
	allowed := make(map[time.Weekday]bool, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		allowed[d] = true
	}
	return allowed
}

func TestExpandWeeklyTemplateFullWeek(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday:    {span(t, "10:00", "11:00"), span(t, "11:00", "12:00")},
		time.Wednesday: {span(t, "15:00", "16:00")},
	}

	// 2025-03-10 понедельник, окно ровно 7 дней
	window := DateWindow{Start: "2025-03-10", End: "2025-03-16"}
	ranges, dates, err := ExpandWeeklyTemplate(tpl, window, allWeekdays())
	if err != nil {
		t.Fatalf("ExpandWeeklyTemplate error: %v", err)
	}

	if len(dates) != 7 {
		t.Fatalf("expected all 7 dates produced, got %d", len(dates))
	}
	if len(ranges) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(ranges))
	}

	perDate := make(map[string]int)
	for _, r := range ranges {
		perDate[r.Date]++
	}
	if perDate["2025-03-10"] != 2 {
		t.Fatalf("expected 2 candidates for Monday, got %d", perDate["2025-03-10"])
	}
	if perDate["2025-03-12"] != 1 {
		t.Fatalf("expected 1 candidate for Wednesday, got %d", perDate["2025-03-12"])
	}
	if perDate["2025-03-11"] != 0 {
		t.Fatalf("expected no candidates for unconfigured Tuesday, got %d", perDate["2025-03-11"])
	}
}

func TestExpandWeeklyTemplateRespectsAllowedWeekdays(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday:  {span(t, "10:00", "11:00")},
		time.Tuesday: {span(t, "10:00", "11:00")},
	}

	allowed := map[time.Weekday]bool{time.Monday: true}
	ranges, dates, err := ExpandWeeklyTemplate(tpl, DateWindow{Start: "2025-03-10", End: "2025-03-16"}, allowed)
	if err != nil {
		t.Fatalf("ExpandWeeklyTemplate error: %v", err)
	}

	if len(dates) != 1 || dates[0] != "2025-03-10" {
		t.Fatalf("expected only the Monday date, got %v", dates)
	}
	for _, r := range ranges {
		if r.Date != "2025-03-10" {
			t.Fatalf("candidate on disallowed date %s", r.Date)
		}
	}
}

func TestExpandWeeklyTemplateBoundariesInclusive(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday: {span(t, "10:00", "11:00")},
		time.Sunday: {span(t, "10:00", "11:00")},
	}

	ranges, _, err := ExpandWeeklyTemplate(tpl, DateWindow{Start: "2025-03-10", End: "2025-03-16"}, allWeekdays())
	if err != nil {
		t.Fatalf("ExpandWeeklyTemplate error: %v", err)
	}

	found := map[string]bool{}
	for _, r := range ranges {
		found[r.Date] = true
	}
	if !found["2025-03-10"] || !found["2025-03-16"] {
		t.Fatalf("window boundaries must be inclusive, got %v", found)
	}
}

func TestExpandWeeklyTemplateProducesEmptyConfiguredDates(t *testing.T) {
	// День недели разрешён, но шаблон для него пуст: дата попадает в
	// produced, чтобы применение шаблона очистило её слоты.
	tpl := WeeklyTemplate{}
	allowed := map[time.Weekday]bool{time.Monday: true}

	ranges, dates, err := ExpandWeeklyTemplate(tpl, DateWindow{Start: "2025-03-10", End: "2025-03-10"}, allowed)
	if err != nil {
		t.Fatalf("ExpandWeeklyTemplate error: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("expected no candidates, got %d", len(ranges))
	}
	if len(dates) != 1 {
		t.Fatalf("expected the date to be produced for clearing, got %v", dates)
	}
}

func TestExpandWeeklyTemplateRejectsReversedWindow(t *testing.T) {
	_, _, err := ExpandWeeklyTemplate(WeeklyTemplate{}, DateWindow{Start: "2025-03-16", End: "2025-03-10"}, allWeekdays())
	if err == nil {
		t.Fatal("expected error for reversed window")
	}
}

func TestCopyWeekdayOverwritesTargets(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday:  {span(t, "10:00", "11:00"), span(t, "14:00", "15:00")},
		time.Tuesday: {span(t, "08:00", "09:00")},
	}

	result := CopyWeekday(tpl, time.Monday, []time.Weekday{time.Tuesday, time.Friday})

	if len(result[time.Tuesday]) != 2 {
		t.Fatalf("target weekday must be overwritten, got %v", result[time.Tuesday])
	}
	if len(result[time.Friday]) != 2 {
		t.Fatalf("empty target weekday must receive the copy, got %v", result[time.Friday])
	}
	if len(tpl[time.Tuesday]) != 1 {
		t.Fatal("source template was mutated")
	}
}

func TestCopyWeekdaySkipsSource(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday: {span(t, "10:00", "11:00")},
	}

	result := CopyWeekday(tpl, time.Monday, []time.Weekday{time.Monday})
	if len(result[time.Monday]) != 1 {
		t.Fatalf("copying onto the source must be a no-op, got %v", result[time.Monday])
	}
}
