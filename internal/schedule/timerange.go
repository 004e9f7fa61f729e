package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidRange возвращается когда конец интервала не позже начала
	ErrInvalidRange = errors.New("range end must be after start")
	// ErrOverlappingRanges возвращается когда интервалы одного дня пересекаются
	ErrOverlappingRanges = errors.New("ranges for the same date overlap")
)

// DateLayout формат дат во всём приложении
const DateLayout = "2006-01-02"

// TimeRange полуоткрытый интервал [Start, End) внутри одного календарного дня.
// Интервал, заканчивающийся в T, не пересекается с интервалом, начинающимся в T,
// поэтому фазы "10:00-11:00" и "11:00-12:00" могут стоять вплотную.
type TimeRange struct {
	Date  string    `json:"date"`
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// Validate проверяет корректность интервала
func (r TimeRange) Validate() error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("parse date %q: %w", r.Date, err)
	}

	if !r.Start.Valid() || !r.End.Valid() {
		return ErrInvalidRange
	}

	if r.End <= r.Start {
		return ErrInvalidRange
	}

	return nil
}

// Overlaps проверяет пересечение двух интервалов.
// Интервалы разных дат не пересекаются никогда.
func Overlaps(a, b TimeRange) bool {
	if a.Date != b.Date {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// HasAnyOverlap проверяет есть ли пересечения внутри набора интервалов одного дня.
// Сортировка по началу, затем один линейный проход по соседним парам.
func HasAnyOverlap(ranges []TimeRange) bool {
	if len(ranges) < 2 {
		return false
	}

	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Start < sorted[j].Start
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Date == sorted[i].Date && sorted[i-1].End > sorted[i].Start {
			return true
		}
	}

	return false
}
