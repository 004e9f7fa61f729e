package service

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/repository"
	"go.uber.org/zap"
)

type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	userRepo    *repository.UserRepository
	lessonRepo  *repository.LessonRepository
	reviewRepo  *repository.ReviewRepository
	logger      *zap.Logger
}

func NewTeacherService(
	teacherRepo *repository.TeacherRepository,
	userRepo *repository.UserRepository,
	lessonRepo *repository.LessonRepository,
	reviewRepo *repository.ReviewRepository,
	logger *zap.Logger,
) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		userRepo:    userRepo,
		lessonRepo:  lessonRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// ListTeachers возвращает публичный каталог учителей
func (s *TeacherService) ListTeachers(ctx context.Context) ([]*model.TeacherListing, error) {
	return s.teacherRepo.ListTeachers(ctx)
}

// GetTeacherInfo собирает карточку учителя по id его пользователя
func (s *TeacherService) GetTeacherInfo(ctx context.Context, teacherUserID int64) (*model.TeacherInfo, error) {
	profile, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	instruments, err := s.teacherRepo.GetInstruments(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("get teacher instruments: %w", err)
	}

	totalLessons, err := s.lessonRepo.CountByTeacher(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("count teacher lessons: %w", err)
	}

	rating, err := s.reviewRepo.AverageByTeacher(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("get teacher rating: %w", err)
	}

	return &model.TeacherInfo{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Bio:            profile.Bio,
		HourlyRate:     profile.HourlyRate,
		Instruments:    instruments,
		ProfilePicture: user.ProfilePicture,
		TotalLessons:   totalLessons,
		Rating:         rating,
	}, nil
}
