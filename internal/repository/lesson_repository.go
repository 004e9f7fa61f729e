package repository

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// Book бронирует слот: условно удаляет его и в той же транзакции создаёт урок.
// Условный DELETE закрывает гонку двух одновременных бронирований: проигравший
// получит nil, потому что строки слота уже нет. Цена считается из ставки
// учителя и длительности слота в дробных часах.
func (r *LessonRepository) Book(ctx context.Context, slotID, teacherID, studentID int64, hourlyRate float64) (*model.Lesson, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
		DELETE FROM availability_slots
		WHERE id = $1 AND teacher_id = $2
		RETURNING to_char(slot_date, 'YYYY-MM-DD'), start_minute, end_minute
	`

	var date string
	var start, end int
	err = tx.QueryRow(ctx, deleteQuery, slotID, teacherID).Scan(&date, &start, &end)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Слот уже занят или не существовал
		}
		return nil, fmt.Errorf("consume slot: %w", err)
	}

	durationHours := float64(end-start) / 60
	price := hourlyRate * durationHours

	lesson := &model.Lesson{
		StudentID: studentID,
		TeacherID: teacherID,
		Date:      date,
		Start:     schedule.TimeOfDay(start),
		End:       schedule.TimeOfDay(end),
		Price:     price,
	}

	insertQuery := `
		INSERT INTO lessons (student_id, teacher_id, lesson_date, start_minute, end_minute, price)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING id, created_at
	`

	err = tx.QueryRow(
		ctx, insertQuery,
		lesson.StudentID,
		lesson.TeacherID,
		lesson.Date,
		start,
		end,
		lesson.Price,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return lesson, nil
}

// CancelAndRestore удаляет урок и в той же транзакции возвращает слот
// с теми же датой и временем (новый id). Вторым значением nil означает,
// что урока с таким id нет.
func (r *LessonRepository) CancelAndRestore(ctx context.Context, lessonID int64) (*model.AvailabilitySlot, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
		DELETE FROM lessons
		WHERE id = $1
		RETURNING teacher_id, to_char(lesson_date, 'YYYY-MM-DD'), start_minute, end_minute
	`

	var slot model.AvailabilitySlot
	var start, end int
	err = tx.QueryRow(ctx, deleteQuery, lessonID).Scan(&slot.TeacherID, &slot.Date, &start, &end)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("delete lesson: %w", err)
	}
	slot.Start = schedule.TimeOfDay(start)
	slot.End = schedule.TimeOfDay(end)

	insertQuery := `
		INSERT INTO availability_slots (teacher_id, slot_date, start_minute, end_minute)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, insertQuery, slot.TeacherID, slot.Date, start, end).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("restore slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &slot, nil
}

// SetMeetingLink сохраняет ссылку на видеовстречу урока
func (r *LessonRepository) SetMeetingLink(ctx context.Context, lessonID int64, link string) error {
	query := `
		UPDATE lessons
		SET meeting_link = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, link, lessonID)
	if err != nil {
		return fmt.Errorf("set meeting link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

const lessonColumns = `
	l.id, l.student_id, l.teacher_id, to_char(l.lesson_date, 'YYYY-MM-DD'),
	l.start_minute, l.end_minute, l.price, l.meeting_link, l.created_at
`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	var start, end int
	err := row.Scan(
		&lesson.ID,
		&lesson.StudentID,
		&lesson.TeacherID,
		&lesson.Date,
		&start,
		&end,
		&lesson.Price,
		&lesson.MeetingLink,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	lesson.Start = schedule.TimeOfDay(start)
	lesson.End = schedule.TimeOfDay(end)
	return &lesson, nil
}

// GetByID получает урок по ID
func (r *LessonRepository) GetByID(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons l
		WHERE l.id = $1
	`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, lessonID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

const lessonListColumns = lessonColumns + `,
	teach.first_name || ' ' || teach.last_name,
	teach.profile_picture,
	stud.first_name || ' ' || stud.last_name,
	stud.profile_picture
`

const lessonListJoins = `
	FROM lessons l
	JOIN teacher_profiles tp ON tp.id = l.teacher_id
	JOIN users teach ON teach.id = tp.user_id
	JOIN users stud ON stud.id = l.student_id
`

func (r *LessonRepository) queryLessonList(ctx context.Context, query string, args ...interface{}) ([]*model.Lesson, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		var lesson model.Lesson
		var start, end int
		err := rows.Scan(
			&lesson.ID,
			&lesson.StudentID,
			&lesson.TeacherID,
			&lesson.Date,
			&start,
			&end,
			&lesson.Price,
			&lesson.MeetingLink,
			&lesson.CreatedAt,
			&lesson.TeacherName,
			&lesson.TeacherProfilePicture,
			&lesson.StudentName,
			&lesson.StudentProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lesson.Start = schedule.TimeOfDay(start)
		lesson.End = schedule.TimeOfDay(end)
		lessons = append(lessons, &lesson)
	}

	return lessons, nil
}

// ListForStudent получает уроки студента с именами сторон
func (r *LessonRepository) ListForStudent(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonListColumns + lessonListJoins + `
		WHERE l.student_id = $1
		ORDER BY l.lesson_date, l.start_minute
	`
	return r.queryLessonList(ctx, query, studentID)
}

// ListForTeacherUser получает уроки учителя по ID его пользователя
func (r *LessonRepository) ListForTeacherUser(ctx context.Context, teacherUserID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonListColumns + lessonListJoins + `
		WHERE tp.user_id = $1
		ORDER BY l.lesson_date, l.start_minute
	`
	return r.queryLessonList(ctx, query, teacherUserID)
}

// ListAll получает все уроки (для админки)
func (r *LessonRepository) ListAll(ctx context.Context) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonListColumns + lessonListJoins + `
		ORDER BY l.lesson_date, l.start_minute
	`
	return r.queryLessonList(ctx, query)
}

// HasLessonBefore проверяет был ли у пары (студент, учитель) урок
// с датой строго раньше указанной
func (r *LessonRepository) HasLessonBefore(ctx context.Context, studentID, teacherID int64, date string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM lessons
			WHERE student_id = $1 AND teacher_id = $2 AND lesson_date < $3::date
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, studentID, teacherID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check past lesson exists: %w", err)
	}

	return exists, nil
}

// CountByTeacher считает все уроки учителя
func (r *LessonRepository) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE teacher_id = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count lessons by teacher: %w", err)
	}

	return count, nil
}
