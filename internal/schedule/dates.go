package schedule

import (
	"fmt"
	"time"
)

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate форматирует дату в YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Weekday возвращает день недели даты (0 = Sunday, 6 = Saturday)
func Weekday(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// DatesInWindow возвращает все даты отрезка [start, end] включительно
func DatesInWindow(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}

	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	if to.Before(from) {
		return nil, fmt.Errorf("window end %s before start %s", end, start)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}

	return dates, nil
}
