package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/mux"
)

type LessonHandler struct {
	bookings *service.BookingService
}

func NewLessonHandler(bookings *service.BookingService) *LessonHandler {
	return &LessonHandler{bookings: bookings}
}

// Book бронирует слот учителя для вызывающего студента
func (h *LessonHandler) Book(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok || identity.Role != model.RoleStudent {
		respondError(w, service.ErrForbidden)
		return
	}

	var req struct {
		TeacherUserID int64 `json:"teacher_user_id"`
		SlotID        int64 `json:"slot_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	lesson, err := h.bookings.Book(r.Context(), identity.UserID, req.TeacherUserID, req.SlotID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, lesson)
}

// List возвращает уроки вызывающего, состав зависит от роли
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	lessons, err := h.bookings.ListFor(r.Context(), *identity)
	if err != nil {
		respondError(w, err)
		return
	}

	if lessons == nil {
		lessons = []*model.Lesson{}
	}
	respondJSON(w, http.StatusOK, lessons)
}

// Cancel отменяет урок вызывающего и возвращает слот учителю
func (h *LessonHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	lessonID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid lesson id", http.StatusBadRequest)
		return
	}

	if err := h.bookings.Cancel(r.Context(), lessonID, *identity); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "lesson canceled")
}
