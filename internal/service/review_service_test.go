package service

import (
	"context"
	"errors"
	"testing"

	"github.com/accordo-app/accordo/internal/model"
	"go.uber.org/zap"
)

type fakeReviewStore struct {
	reviews []*model.Review
}

func (f *fakeReviewStore) Create(ctx context.Context, review *model.Review) error {
	review.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewStore) Exists(ctx context.Context, teacherID, studentID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.TeacherID == teacherID && r.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// fakeEligibilityStore отвечает был ли у пары урок с датой раньше указанной
type fakeEligibilityStore struct {
	lessonDates map[[2]int64][]string // (studentID, teacherID) -> даты уроков
}

func (f *fakeEligibilityStore) HasLessonBefore(ctx context.Context, studentID, teacherID int64, date string) (bool, error) {
	for _, d := range f.lessonDates[[2]int64{studentID, teacherID}] {
		if d < date {
			return true, nil
		}
	}
	return false, nil
}

func newReviewFixture(lessonDates map[[2]int64][]string) (*ReviewService, *fakeReviewStore) {
	reviews := &fakeReviewStore{}
	lessons := &fakeEligibilityStore{lessonDates: lessonDates}
	teachers := &fakeTeacherStore{profiles: map[int64]*model.TeacherProfile{
		10: {ID: 1, UserID: 10},
	}}
	return NewReviewService(reviews, lessons, teachers, zap.NewNop()), reviews
}

func TestCanRateLifecycle(t *testing.T) {
	svc, _ := newReviewFixture(map[[2]int64][]string{
		{20, 1}: {"2025-06-02"},
	})
	ctx := context.Background()

	// В день урока оценивать ещё нельзя
	ok, err := svc.CanRate(ctx, 20, 10, "2025-06-02")
	if err != nil {
		t.Fatalf("CanRate() error = %v", err)
	}
	if ok {
		t.Error("CanRate() on lesson day = true, want false")
	}

	// На следующий день - можно
	ok, err = svc.CanRate(ctx, 20, 10, "2025-06-03")
	if err != nil {
		t.Fatalf("CanRate() error = %v", err)
	}
	if !ok {
		t.Error("CanRate() day after lesson = false, want true")
	}

	if _, err := svc.Create(ctx, 20, 10, 5, "2025-06-03"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// После выставленной оценки право пропадает
	ok, err = svc.CanRate(ctx, 20, 10, "2025-06-04")
	if err != nil {
		t.Fatalf("CanRate() error = %v", err)
	}
	if ok {
		t.Error("CanRate() after rating = true, want false")
	}
}

func TestCanRateWithoutLesson(t *testing.T) {
	svc, _ := newReviewFixture(nil)

	ok, err := svc.CanRate(context.Background(), 20, 10, "2025-06-03")
	if err != nil {
		t.Fatalf("CanRate() error = %v", err)
	}
	if ok {
		t.Error("CanRate() without lessons = true, want false")
	}
}

func TestCanRateUnknownTeacher(t *testing.T) {
	svc, _ := newReviewFixture(nil)

	if _, err := svc.CanRate(context.Background(), 20, 99, "2025-06-03"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CanRate() error = %v, want ErrNotFound", err)
	}
}

func TestCreateReviewErrors(t *testing.T) {
	lessonDates := map[[2]int64][]string{
		{20, 1}: {"2025-06-02"},
	}

	t.Run("invalid rating", func(t *testing.T) {
		svc, _ := newReviewFixture(lessonDates)
		for _, rating := range []int{0, 6, -1} {
			if _, err := svc.Create(context.Background(), 20, 10, rating, "2025-06-03"); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("Create(rating=%d) error = %v, want ErrInvalidRating", rating, err)
			}
		}
	})

	t.Run("not eligible", func(t *testing.T) {
		svc, _ := newReviewFixture(lessonDates)
		if _, err := svc.Create(context.Background(), 21, 10, 4, "2025-06-03"); !errors.Is(err, ErrNotEligible) {
			t.Errorf("Create() error = %v, want ErrNotEligible", err)
		}
	})

	t.Run("already rated", func(t *testing.T) {
		svc, store := newReviewFixture(lessonDates)
		if _, err := svc.Create(context.Background(), 20, 10, 4, "2025-06-03"); err != nil {
			t.Fatalf("first Create() error = %v", err)
		}
		if _, err := svc.Create(context.Background(), 20, 10, 5, "2025-06-03"); !errors.Is(err, ErrAlreadyRated) {
			t.Errorf("second Create() error = %v, want ErrAlreadyRated", err)
		}
		if len(store.reviews) != 1 {
			t.Errorf("reviews stored = %d, want 1", len(store.reviews))
		}
	})
}
