package model

import (
	"time"

	"github.com/accordo-app/accordo/internal/schedule"
)

// AvailabilitySlot окно, открытое учителем ровно под одну запись.
// Слот удаляется при бронировании и создаётся заново (с новым id) при отмене
// урока: слот и урок на один интервал никогда не существуют одновременно.
type AvailabilitySlot struct {
	ID        int64              `json:"id"`
	TeacherID int64              `json:"teacher_id"`
	Date      string             `json:"date"`
	Start     schedule.TimeOfDay `json:"start_time"`
	End       schedule.TimeOfDay `json:"end_time"`
	CreatedAt time.Time          `json:"created_at"`
}

// Range возвращает интервал слота
func (s *AvailabilitySlot) Range() schedule.TimeRange {
	return schedule.TimeRange{Date: s.Date, Start: s.Start, End: s.End}
}
