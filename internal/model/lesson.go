package model

import (
	"time"

	"github.com/accordo-app/accordo/internal/schedule"
)

// Lesson забронированный урок, занявший интервал ровно одного бывшего слота
type Lesson struct {
	ID          int64              `json:"id"`
	StudentID   int64              `json:"student_id"`
	TeacherID   int64              `json:"teacher_id"`
	Date        string             `json:"date"`
	Start       schedule.TimeOfDay `json:"start_time"`
	End         schedule.TimeOfDay `json:"end_time"`
	Price       float64            `json:"price"`
	MeetingLink *string            `json:"meeting_link"`
	CreatedAt   time.Time          `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	TeacherName           string  `json:"teacher_name,omitempty"`
	TeacherProfilePicture *string `json:"teacher_profile_picture,omitempty"`
	StudentName           string  `json:"student_name,omitempty"`
	StudentProfilePicture *string `json:"student_profile_picture,omitempty"`
}

// EndTime возвращает момент окончания урока
func (l *Lesson) EndTime() (time.Time, error) {
	day, err := schedule.ParseDate(l.Date)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(l.End.Duration()), nil
}

// Range возвращает интервал урока
func (l *Lesson) Range() schedule.TimeRange {
	return schedule.TimeRange{Date: l.Date, Start: l.Start, End: l.End}
}
