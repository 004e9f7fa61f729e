package service

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/repository"
	"go.uber.org/zap"
)

type AdminService struct {
	userRepo   *repository.UserRepository
	lessonRepo *repository.LessonRepository
	logger     *zap.Logger
}

func NewAdminService(
	userRepo *repository.UserRepository,
	lessonRepo *repository.LessonRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		lessonRepo: lessonRepo,
		logger:     logger,
	}
}

// ListUsers возвращает всех пользователей платформы
func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// ListLessons возвращает все уроки платформы
func (s *AdminService) ListLessons(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessonRepo.ListAll(ctx)
}

// DeleteUser удаляет пользователя и возвращает путь к картинке профиля
// для удаления файла
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) (*string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	s.logger.Info("User deleted by admin", zap.Int64("user_id", userID))
	return user.ProfilePicture, nil
}

// DeleteLesson отменяет урок от имени администратора. Слот учителя
// восстанавливается, как при обычной отмене.
func (s *AdminService) DeleteLesson(ctx context.Context, lessonID int64) error {
	restored, err := s.lessonRepo.CancelAndRestore(ctx, lessonID)
	if err != nil {
		return err
	}

	if restored == nil {
		return ErrLessonNotFound
	}

	s.logger.Info("Lesson deleted by admin",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("restored_slot_id", restored.ID),
	)

	return nil
}
