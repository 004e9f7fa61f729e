package service

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"go.uber.org/zap"
)

type reviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	Exists(ctx context.Context, teacherID, studentID int64) (bool, error)
}

type reviewLessonStore interface {
	HasLessonBefore(ctx context.Context, studentID, teacherID int64, date string) (bool, error)
}

type reviewTeacherStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.TeacherProfile, error)
}

type ReviewService struct {
	reviews  reviewStore
	lessons  reviewLessonStore
	teachers reviewTeacherStore
	logger   *zap.Logger
}

func NewReviewService(reviews reviewStore, lessons reviewLessonStore, teachers reviewTeacherStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		lessons:  lessons,
		teachers: teachers,
		logger:   logger,
	}
}

// CanRate проверяет может ли студент оценить учителя: оценки ещё нет и был
// хотя бы один урок с датой строго раньше today. Сравнение только по
// календарной дате - льготное окно из BookingService здесь сознательно
// не используется.
func (s *ReviewService) CanRate(ctx context.Context, studentID, teacherUserID int64, today string) (bool, error) {
	profile, err := s.teachers.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return false, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return false, ErrNotFound
	}

	rated, err := s.reviews.Exists(ctx, profile.ID, studentID)
	if err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	if rated {
		return false, nil
	}

	hadLesson, err := s.lessons.HasLessonBefore(ctx, studentID, profile.ID, today)
	if err != nil {
		return false, fmt.Errorf("check past lesson: %w", err)
	}

	return hadLesson, nil
}

// Create сохраняет оценку учителя студентом. Не более одной оценки на пару,
// и только после прошедшего урока.
func (s *ReviewService) Create(ctx context.Context, studentID, teacherUserID int64, rating int, today string) (*model.Review, error) {
	review := &model.Review{StudentID: studentID, Rating: rating}
	if !review.RatingValid() {
		return nil, ErrInvalidRating
	}

	profile, err := s.teachers.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return nil, ErrNotFound
	}
	review.TeacherID = profile.ID

	rated, err := s.reviews.Exists(ctx, profile.ID, studentID)
	if err != nil {
		return nil, fmt.Errorf("check review exists: %w", err)
	}
	if rated {
		return nil, ErrAlreadyRated
	}

	hadLesson, err := s.lessons.HasLessonBefore(ctx, studentID, profile.ID, today)
	if err != nil {
		return nil, fmt.Errorf("check past lesson: %w", err)
	}
	if !hadLesson {
		return nil, ErrNotEligible
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("Review created",
		zap.Int64("teacher_id", review.TeacherID),
		zap.Int64("student_id", studentID),
		zap.Int("rating", rating),
	)

	return review, nil
}
