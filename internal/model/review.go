package model

// Review оценка учителя студентом, не более одной на пару (teacher, student)
type Review struct {
	ID        int64 `json:"id"`
	TeacherID int64 `json:"teacher_id"`
	StudentID int64 `json:"student_id"`
	Rating    int   `json:"rating"` // 1-5
}

// RatingValid checks the rating value is within the allowed scale
func (r *Review) RatingValid() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
