package service

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/repository"
	"go.uber.org/zap"
)

// UpdateProfileParams поля профиля, которые разрешено менять после
// регистрации. Nil-поля остаются нетронутыми.
type UpdateProfileParams struct {
	FirstName     *string
	LastName      *string
	Bio           *string
	HourlyRate    *float64
	InstrumentIDs []int64
}

type ProfileService struct {
	userRepo    *repository.UserRepository
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewProfileService(
	userRepo *repository.UserRepository,
	teacherRepo *repository.TeacherRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// GetUser возвращает пользователя по id
func (s *ProfileService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// UpdateProfile обновляет имя и, для учителей, описание, ставку и список
// инструментов
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return ErrNotFound
	}

	if params.FirstName != nil || params.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName

		if params.FirstName != nil {
			firstName = *params.FirstName
		}

		if params.LastName != nil {
			lastName = *params.LastName
		}

		if err := s.userRepo.UpdateNames(ctx, userID, firstName, lastName); err != nil {
			return err
		}
	}

	if !user.IsTeacher() {
		return nil
	}

	profile, err := s.teacherRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return ErrNotFound
	}

	if params.Bio != nil || params.HourlyRate != nil {
		if err := s.teacherRepo.UpdateProfile(ctx, profile.ID, params.Bio, params.HourlyRate); err != nil {
			return err
		}
	}

	if params.InstrumentIDs != nil {
		if err := s.teacherRepo.ReplaceInstruments(ctx, profile.ID, params.InstrumentIDs); err != nil {
			return err
		}
	}

	s.logger.Info("Profile updated", zap.Int64("user_id", userID))
	return nil
}

// UpdateProfilePicture сохраняет путь к новой картинке профиля и возвращает
// путь к прежней, чтобы вызывающий удалил файл с диска
func (s *ProfileService) UpdateProfilePicture(ctx context.Context, userID int64, picture *string) (*string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	if err := s.userRepo.UpdateProfilePicture(ctx, userID, picture); err != nil {
		return nil, err
	}

	return user.ProfilePicture, nil
}

// DeleteAccount удаляет пользователя со всеми связанными данными (каскад
// в БД) и возвращает путь к картинке профиля для удаления файла
func (s *ProfileService) DeleteAccount(ctx context.Context, userID int64) (*string, error) {
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

	s.logger.Info("Account deleted", zap.Int64("user_id", userID))
	return user.ProfilePicture, nil
}
