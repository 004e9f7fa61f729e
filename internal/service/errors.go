package service

import "errors"

// Ошибки уровня домена. Все проверки выполняются до каких-либо мутаций;
// инфраструктурные ошибки хранилища оборачиваются и пробрасываются как есть.
var (
	ErrNotFound           = errors.New("not found")
	ErrSlotNotFound       = errors.New("slot not found or already booked")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrLessonCompleted    = errors.New("lesson already completed")
	ErrForbidden          = errors.New("operation not permitted for this user")
	ErrAlreadyRated       = errors.New("teacher already rated by this student")
	ErrNotEligible        = errors.New("no past lesson with this teacher")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
