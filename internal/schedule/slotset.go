package schedule

import "fmt"

// ValidateReplacement проверяет предлагаемый набор интервалов перед записью.
// Каждый интервал должен быть корректен сам по себе, интервалы одного дня не
// должны пересекаться. Любое нарушение отклоняет весь набор целиком.
func ValidateReplacement(ranges []TimeRange) error {
	byDate := make(map[string][]TimeRange)
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return err
		}
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	for date, dayRanges := range byDate {
		if HasAnyOverlap(dayRanges) {
			return fmt.Errorf("date %s: %w", date, ErrOverlappingRanges)
		}
	}

	return nil
}

// ReplaceForDates заменяет интервалы на выбранные даты: все существующие
// интервалы с датой из dates удаляются, вместо них вставляются newRanges.
// Интервалы на остальные даты не трогаются. Пустой newRanges при непустом
// dates очищает выбранные даты. Операция чистая: входной набор не меняется.
func ReplaceForDates(current []TimeRange, dates []string, newRanges []TimeRange) ([]TimeRange, error) {
	if err := ValidateReplacement(newRanges); err != nil {
		return nil, err
	}

	replaced := make(map[string]bool, len(dates))
	for _, d := range dates {
		replaced[d] = true
	}

	result := make([]TimeRange, 0, len(current)+len(newRanges))
	for _, r := range current {
		if !replaced[r.Date] {
			result = append(result, r)
		}
	}

	result = append(result, newRanges...)
	return result, nil
}
