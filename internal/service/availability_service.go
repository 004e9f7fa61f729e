package service

import (
	"context"
	"fmt"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/repository"
	"github.com/accordo-app/accordo/internal/schedule"
	"go.uber.org/zap"
)

type AvailabilityService struct {
	slotRepo    *repository.SlotRepository
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewAvailabilityService(
	slotRepo *repository.SlotRepository,
	teacherRepo *repository.TeacherRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		slotRepo:    slotRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ReplaceForDates заменяет слоты учителя на выбранные даты. Сначала весь
// набор проверяется (корректность интервалов, отсутствие пересечений внутри
// дня), и только потом выполняется замена одной транзакцией: никаких
// частичных записей. Пустой newRanges при непустом dates очищает эти даты.
func (s *AvailabilityService) ReplaceForDates(ctx context.Context, teacherUserID int64, dates []string, newRanges []schedule.TimeRange) error {
	profile, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return ErrNotFound
	}

	for _, date := range dates {
		if _, err := schedule.ParseDate(date); err != nil {
			return err
		}
	}

	if err := schedule.ValidateReplacement(newRanges); err != nil {
		return err
	}

	if err := s.slotRepo.ReplaceForDates(ctx, profile.ID, dates, newRanges); err != nil {
		return err
	}

	s.logger.Info("Availability replaced",
		zap.Int64("teacher_id", profile.ID),
		zap.Int("dates", len(dates)),
		zap.Int("slots", len(newRanges)),
	)

	return nil
}

// ApplyWeeklyTemplate разворачивает недельный шаблон в окне дат и заменяет
// слоты на все подошедшие даты. Даты окна, чей день недели не выбран,
// не затрагиваются.
func (s *AvailabilityService) ApplyWeeklyTemplate(ctx context.Context, teacherUserID int64, tpl schedule.WeeklyTemplate, window schedule.DateWindow, allowed map[time.Weekday]bool) (int, error) {
	profile, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return 0, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return 0, ErrNotFound
	}

	ranges, dates, err := schedule.ExpandWeeklyTemplate(tpl, window, allowed)
	if err != nil {
		return 0, err
	}

	if err := schedule.ValidateReplacement(ranges); err != nil {
		return 0, err
	}

	if err := s.slotRepo.ReplaceForDates(ctx, profile.ID, dates, ranges); err != nil {
		return 0, err
	}

	s.logger.Info("Weekly template applied",
		zap.Int64("teacher_id", profile.ID),
		zap.String("window_start", window.Start),
		zap.String("window_end", window.End),
		zap.Int("dates", len(dates)),
		zap.Int("slots", len(ranges)),
	)

	return len(ranges), nil
}

// ListForTeacherUser возвращает слоты учителя начиная с завтрашнего дня.
// Сегодняшние и прошедшие слоты не бронируемы и наружу не отдаются.
func (s *AvailabilityService) ListForTeacherUser(ctx context.Context, teacherUserID int64, now time.Time) ([]*model.AvailabilitySlot, error) {
	profile, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return nil, ErrNotFound
	}

	tomorrow := schedule.FormatDate(now.AddDate(0, 0, 1))
	return s.slotRepo.ListByTeacherFrom(ctx, profile.ID, tomorrow)
}

// ScheduleForTeacherUser возвращает все слоты учителя начиная с указанной
// даты, для календаря самого учителя и отрисовки недели
func (s *AvailabilityService) ScheduleForTeacherUser(ctx context.Context, teacherUserID int64, fromDate string) ([]*model.AvailabilitySlot, error) {
	profile, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return nil, ErrNotFound
	}

	return s.slotRepo.ListByTeacherFrom(ctx, profile.ID, fromDate)
}

// PurgeExpired удаляет свободные слоты с датой раньше сегодняшней
func (s *AvailabilityService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	today := schedule.FormatDate(now)
	return s.slotRepo.DeleteExpiredBefore(ctx, today)
}
