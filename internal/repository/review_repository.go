package repository

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create создаёт оценку
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (teacher_id, student_id, rating)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		review.TeacherID,
		review.StudentID,
		review.Rating,
	).Scan(&review.ID)

	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// Exists проверяет оценивал ли студент этого учителя
func (r *ReviewRepository) Exists(ctx context.Context, teacherID, studentID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reviews
			WHERE teacher_id = $1 AND student_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, teacherID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}

	return exists, nil
}

// AverageByTeacher считает среднюю оценку учителя, 0 если оценок нет
func (r *ReviewRepository) AverageByTeacher(ctx context.Context, teacherID int64) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE teacher_id = $1
	`

	var avg float64
	err := r.pool.QueryRow(ctx, query, teacherID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating by teacher: %w", err)
	}

	return avg, nil
}
