package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/render"
	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/mux"
)

type TeacherHandler struct {
	teachers     *service.TeacherService
	availability *service.AvailabilityService
	bookings     *service.BookingService
}

func NewTeacherHandler(
	teachers *service.TeacherService,
	availability *service.AvailabilityService,
	bookings *service.BookingService,
) *TeacherHandler {
	return &TeacherHandler{
		teachers:     teachers,
		availability: availability,
		bookings:     bookings,
	}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.teachers.ListTeachers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *TeacherHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid teacher id", http.StatusBadRequest)
		return
	}

	info, err := h.teachers.GetTeacherInfo(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// SchedulePNG отдаёт расписание учителя на неделю одной картинкой:
// свободные слоты и занятые уроками интервалы. Параметр week задаёт любую
// дату внутри нужной недели, по умолчанию текущая.
func (h *TeacherHandler) SchedulePNG(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid teacher id", http.StatusBadRequest)
		return
	}

	anchor := time.Now().UTC()
	if week := r.URL.Query().Get("week"); week != "" {
		anchor, err = schedule.ParseDate(week)
		if err != nil {
			http.Error(w, "Invalid week date", http.StatusBadRequest)
			return
		}
	}
	weekStart := mondayOf(anchor)
	weekEnd := weekStart.AddDate(0, 0, 6)

	slots, err := h.availability.ScheduleForTeacherUser(r.Context(), userID, schedule.FormatDate(weekStart))
	if err != nil {
		respondError(w, err)
		return
	}

	lessons, err := h.bookings.ListFor(r.Context(), service.Identity{UserID: userID, Role: model.RoleTeacher})
	if err != nil {
		respondError(w, err)
		return
	}

	endDate := schedule.FormatDate(weekEnd)
	var free, booked []schedule.TimeRange
	for _, s := range slots {
		if s.Date <= endDate {
			free = append(free, s.Range())
		}
	}
	startDate := schedule.FormatDate(weekStart)
	for _, l := range lessons {
		if l.Date >= startDate && l.Date <= endDate {
			booked = append(booked, l.Range())
		}
	}

	png, err := render.WeekPNG(weekStart, free, booked)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
