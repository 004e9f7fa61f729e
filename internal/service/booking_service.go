package service

import (
	"context"
	"fmt"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"go.uber.org/zap"
)

// LessonGracePeriod окно после номинального конца урока, в течение которого
// урок всё ещё считается предстоящим (и отменяемым). Занятия нередко
// затягиваются, поэтому урок не становится "прошедшим" ровно в момент конца.
// Право на оценку считается иначе: только по календарной дате, см. ReviewService.
const LessonGracePeriod = 2 * time.Hour

type bookingLessonStore interface {
	Book(ctx context.Context, slotID, teacherID, studentID int64, hourlyRate float64) (*model.Lesson, error)
	CancelAndRestore(ctx context.Context, lessonID int64) (*model.AvailabilitySlot, error)
	SetMeetingLink(ctx context.Context, lessonID int64, link string) error
	GetByID(ctx context.Context, lessonID int64) (*model.Lesson, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*model.Lesson, error)
	ListForTeacherUser(ctx context.Context, teacherUserID int64) ([]*model.Lesson, error)
	ListAll(ctx context.Context) ([]*model.Lesson, error)
}

type bookingTeacherStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.TeacherProfile, error)
}

type BookingService struct {
	lessons  bookingLessonStore
	teachers bookingTeacherStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(lessons bookingLessonStore, teachers bookingTeacherStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		lessons:  lessons,
		teachers: teachers,
		logger:   logger,
		// Даты и времена уроков хранятся без зоны и разбираются как UTC,
		// поэтому текущий момент сравнивается тоже в UTC
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Book бронирует слот учителя для студента. Слот удаляется условно в одной
// транзакции с созданием урока: если слота уже нет (занят или не существовал),
// операция завершается ErrSlotNotFound - различить эти случаи вызывающий
// всё равно не может. Цена: ставка учителя в час * длительность в дробных часах.
func (s *BookingService) Book(ctx context.Context, studentID, teacherUserID, slotID int64) (*model.Lesson, error) {
	profile, err := s.teachers.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}

	if profile == nil {
		return nil, ErrNotFound
	}

	var rate float64
	if profile.HourlyRate != nil {
		rate = *profile.HourlyRate
	}

	lesson, err := s.lessons.Book(ctx, slotID, profile.ID, studentID, rate)
	if err != nil {
		return nil, fmt.Errorf("book slot: %w", err)
	}

	if lesson == nil {
		return nil, ErrSlotNotFound
	}

	// Ссылка на встречу создаётся после вставки: в имя комнаты входит id урока
	link := MeetingLink(lesson.Date, lesson.ID)
	if err := s.lessons.SetMeetingLink(ctx, lesson.ID, link); err != nil {
		return nil, fmt.Errorf("set meeting link: %w", err)
	}
	lesson.MeetingLink = &link

	s.logger.Info("Slot booked",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("slot_id", slotID),
		zap.Float64("price", lesson.Price),
	)

	return lesson, nil
}

// Cancel отменяет урок. Студент может отменить только свой урок, учитель -
// только урок на своём слоте. Урок удаляется, и в той же транзакции создаётся
// новый слот с теми же датой и временем (id будет новый).
func (s *BookingService) Cancel(ctx context.Context, lessonID int64, actor Identity) error {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}

	if lesson == nil {
		return ErrLessonNotFound
	}

	switch actor.Role {
	case model.RoleStudent:
		if lesson.StudentID != actor.UserID {
			return ErrForbidden
		}
	case model.RoleTeacher:
		profile, err := s.teachers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("get teacher profile: %w", err)
		}
		if profile == nil || lesson.TeacherID != profile.ID {
			return ErrForbidden
		}
	case model.RoleAdmin:
		// Админ удаляет уроки через админский маршрут
		return ErrForbidden
	default:
		return ErrForbidden
	}

	if past, err := IsLessonPast(lesson, s.now()); err != nil {
		return err
	} else if past {
		return ErrLessonCompleted
	}

	slot, err := s.lessons.CancelAndRestore(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("cancel lesson: %w", err)
	}

	if slot == nil {
		return ErrLessonNotFound
	}

	s.logger.Info("Lesson canceled",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("actor_id", actor.UserID),
		zap.String("actor_role", actor.Role.String()),
		zap.Int64("restored_slot_id", slot.ID),
	)

	return nil
}

// ListFor возвращает уроки вызывающего в зависимости от роли
func (s *BookingService) ListFor(ctx context.Context, actor Identity) ([]*model.Lesson, error) {
	switch actor.Role {
	case model.RoleStudent:
		return s.lessons.ListForStudent(ctx, actor.UserID)
	case model.RoleTeacher:
		return s.lessons.ListForTeacherUser(ctx, actor.UserID)
	case model.RoleAdmin:
		return s.lessons.ListAll(ctx)
	default:
		return nil, ErrForbidden
	}
}

// IsLessonPast проверяет закончился ли урок с учётом льготного окна
func IsLessonPast(lesson *model.Lesson, now time.Time) (bool, error) {
	end, err := lesson.EndTime()
	if err != nil {
		return false, fmt.Errorf("lesson end time: %w", err)
	}
	return now.After(end.Add(LessonGracePeriod)), nil
}
