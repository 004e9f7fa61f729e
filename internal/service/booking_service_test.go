package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/schedule"
	"go.uber.org/zap"
)

// fakeLessonStore повторяет жизненный цикл слотов и уроков в памяти:
// Book удаляет слот и создаёт урок, CancelAndRestore - наоборот
type fakeLessonStore struct {
	slots        map[int64]*model.AvailabilitySlot
	lessons      map[int64]*model.Lesson
	nextSlotID   int64
	nextLessonID int64
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{
		slots:        make(map[int64]*model.AvailabilitySlot),
		lessons:      make(map[int64]*model.Lesson),
		nextSlotID:   1,
		nextLessonID: 1,
	}
}

func (f *fakeLessonStore) addSlot(teacherID int64, date string, start, end schedule.TimeOfDay) *model.AvailabilitySlot {
	slot := &model.AvailabilitySlot{
		ID:        f.nextSlotID,
		TeacherID: teacherID,
		Date:      date,
		Start:     start,
		End:       end,
	}
	f.nextSlotID++
	f.slots[slot.ID] = slot
	return slot
}

func (f *fakeLessonStore) Book(ctx context.Context, slotID, teacherID, studentID int64, hourlyRate float64) (*model.Lesson, error) {
	slot, ok := f.slots[slotID]
	if !ok || slot.TeacherID != teacherID {
		return nil, nil
	}
	delete(f.slots, slotID)

	lesson := &model.Lesson{
		ID:        f.nextLessonID,
		StudentID: studentID,
		TeacherID: teacherID,
		Date:      slot.Date,
		Start:     slot.Start,
		End:       slot.End,
		Price:     hourlyRate * float64(slot.End-slot.Start) / 60.0,
	}
	f.nextLessonID++
	f.lessons[lesson.ID] = lesson
	return lesson, nil
}

func (f *fakeLessonStore) CancelAndRestore(ctx context.Context, lessonID int64) (*model.AvailabilitySlot, error) {
	lesson, ok := f.lessons[lessonID]
	if !ok {
		return nil, nil
	}
	delete(f.lessons, lessonID)
	return f.addSlot(lesson.TeacherID, lesson.Date, lesson.Start, lesson.End), nil
}

func (f *fakeLessonStore) SetMeetingLink(ctx context.Context, lessonID int64, link string) error {
	lesson, ok := f.lessons[lessonID]
	if !ok {
		return errors.New("lesson not found")
	}
	lesson.MeetingLink = &link
	return nil
}

func (f *fakeLessonStore) GetByID(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	return f.lessons[lessonID], nil
}

func (f *fakeLessonStore) ListForStudent(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	var out []*model.Lesson
	for _, l := range f.lessons {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) ListForTeacherUser(ctx context.Context, teacherUserID int64) ([]*model.Lesson, error) {
	return nil, nil
}

func (f *fakeLessonStore) ListAll(ctx context.Context) ([]*model.Lesson, error) {
	out := make([]*model.Lesson, 0, len(f.lessons))
	for _, l := range f.lessons {
		out = append(out, l)
	}
	return out, nil
}

type fakeTeacherStore struct {
	profiles map[int64]*model.TeacherProfile // по id пользователя
}

func (f *fakeTeacherStore) GetByUserID(ctx context.Context, userID int64) (*model.TeacherProfile, error) {
	return f.profiles[userID], nil
}

func rate(v float64) *float64 { return &v }

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) error = %v", s, err)
	}
	return tod
}

func newBookingFixture(t *testing.T) (*BookingService, *fakeLessonStore) {
	t.Helper()

	lessons := newFakeLessonStore()
	teachers := &fakeTeacherStore{profiles: map[int64]*model.TeacherProfile{
		10: {ID: 1, UserID: 10, HourlyRate: rate(30)},
	}}
	return NewBookingService(lessons, teachers, zap.NewNop()), lessons
}

func TestBookConsumesSlotAndPricesLesson(t *testing.T) {
	svc, store := newBookingFixture(t)
	slot := store.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:30"))

	lesson, err := svc.Book(context.Background(), 20, 10, slot.ID)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if _, ok := store.slots[slot.ID]; ok {
		t.Fatalf("slot %d still present after booking", slot.ID)
	}
	if lesson.Price != 45 {
		t.Errorf("Price = %v, want 45 (30/h * 1.5h)", lesson.Price)
	}
	if lesson.MeetingLink == nil {
		t.Fatal("MeetingLink is nil")
	}
	if !strings.HasPrefix(*lesson.MeetingLink, "https://meet.jit.si/accordo_2025_06_02_lesson_") {
		t.Errorf("MeetingLink = %q, unexpected format", *lesson.MeetingLink)
	}
}

func TestBookConsumedSlot(t *testing.T) {
	svc, store := newBookingFixture(t)
	slot := store.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:00"))

	if _, err := svc.Book(context.Background(), 20, 10, slot.ID); err != nil {
		t.Fatalf("first Book() error = %v", err)
	}

	// Второй студент пытается взять тот же слот
	if _, err := svc.Book(context.Background(), 21, 10, slot.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("second Book() error = %v, want ErrSlotNotFound", err)
	}
}

func TestBookUnknownTeacher(t *testing.T) {
	svc, _ := newBookingFixture(t)

	if _, err := svc.Book(context.Background(), 20, 99, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Book() error = %v, want ErrNotFound", err)
	}
}

func TestBookWithoutHourlyRate(t *testing.T) {
	lessons := newFakeLessonStore()
	teachers := &fakeTeacherStore{profiles: map[int64]*model.TeacherProfile{
		10: {ID: 1, UserID: 10}, // ставка не задана
	}}
	svc := NewBookingService(lessons, teachers, zap.NewNop())
	slot := lessons.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:00"))

	lesson, err := svc.Book(context.Background(), 20, 10, slot.ID)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if lesson.Price != 0 {
		t.Errorf("Price = %v, want 0", lesson.Price)
	}
}

func TestCancelRestoresEquivalentSlot(t *testing.T) {
	svc, store := newBookingFixture(t)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	slot := store.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:00"))
	before := len(store.slots)

	lesson, err := svc.Book(context.Background(), 20, 10, slot.ID)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	actor := Identity{UserID: 20, Role: model.RoleStudent}
	if err := svc.Cancel(context.Background(), lesson.ID, actor); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if len(store.slots) != before {
		t.Fatalf("slot count = %d, want %d", len(store.slots), before)
	}
	if len(store.lessons) != 0 {
		t.Fatalf("lesson count = %d, want 0", len(store.lessons))
	}

	var restored *model.AvailabilitySlot
	for _, s := range store.slots {
		restored = s
	}
	if restored.ID == slot.ID {
		t.Errorf("restored slot reused id %d", slot.ID)
	}
	if restored.Range() != slot.Range() {
		t.Errorf("restored range = %+v, want %+v", restored.Range(), slot.Range())
	}
}

func TestCancelAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   Identity
		wantErr error
	}{
		{"owning student", Identity{UserID: 20, Role: model.RoleStudent}, nil},
		{"other student", Identity{UserID: 21, Role: model.RoleStudent}, ErrForbidden},
		{"owning teacher", Identity{UserID: 10, Role: model.RoleTeacher}, nil},
		{"other teacher", Identity{UserID: 11, Role: model.RoleTeacher}, ErrForbidden},
		{"admin", Identity{UserID: 1, Role: model.RoleAdmin}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons := newFakeLessonStore()
			teachers := &fakeTeacherStore{profiles: map[int64]*model.TeacherProfile{
				10: {ID: 1, UserID: 10, HourlyRate: rate(30)},
				11: {ID: 2, UserID: 11, HourlyRate: rate(25)},
			}}
			svc := NewBookingService(lessons, teachers, zap.NewNop())
			svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

			slot := lessons.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:00"))
			lesson, err := svc.Book(context.Background(), 20, 10, slot.ID)
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}

			err = svc.Cancel(context.Background(), lesson.ID, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Cancel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCancelAfterGracePeriod(t *testing.T) {
	svc, store := newBookingFixture(t)

	slot := store.addSlot(1, "2025-06-02", mustTime(t, "10:00"), mustTime(t, "11:00"))
	lesson, err := svc.Book(context.Background(), 20, 10, slot.ID)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	// Конец урока 11:00, льготное окно до 13:00
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 13, 0, 1, 0, time.UTC) }

	actor := Identity{UserID: 20, Role: model.RoleStudent}
	if err := svc.Cancel(context.Background(), lesson.ID, actor); !errors.Is(err, ErrLessonCompleted) {
		t.Errorf("Cancel() error = %v, want ErrLessonCompleted", err)
	}
}

func TestCancelMissingLesson(t *testing.T) {
	svc, _ := newBookingFixture(t)

	actor := Identity{UserID: 20, Role: model.RoleStudent}
	if err := svc.Cancel(context.Background(), 404, actor); !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("Cancel() error = %v, want ErrLessonNotFound", err)
	}
}

func TestIsLessonPast(t *testing.T) {
	lesson := &model.Lesson{
		Date:  "2025-06-02",
		Start: mustTime(t, "10:00"),
		End:   mustTime(t, "11:00"),
	}
	graceEnd := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before lesson", time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), false},
		{"right after end", time.Date(2025, 6, 2, 11, 0, 1, 0, time.UTC), false},
		{"at grace boundary", graceEnd, false},
		{"past grace", graceEnd.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsLessonPast(lesson, tt.now)
			if err != nil {
				t.Fatalf("IsLessonPast() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsLessonPast(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
