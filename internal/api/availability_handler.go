package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Replace заменяет слоты учителя на перечисленные даты целиком.
// Даты без единого слота в payload очищаются.
func (h *AvailabilityHandler) Replace(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok || identity.Role != model.RoleTeacher {
		respondError(w, service.ErrForbidden)
		return
	}

	var req struct {
		Dates []string             `json:"dates"`
		Slots []schedule.TimeRange `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if len(req.Dates) == 0 {
		http.Error(w, "dates are required", http.StatusBadRequest)
		return
	}

	if err := h.availability.ReplaceForDates(r.Context(), identity.UserID, req.Dates, req.Slots); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "availability updated")
}

// ApplyTemplate разворачивает недельный шаблон в окне дат. Необязательный
// блок copy переносит спаны одного дня недели на другие перед разворачиванием.
func (h *AvailabilityHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok || identity.Role != model.RoleTeacher {
		respondError(w, service.ErrForbidden)
		return
	}

	var req struct {
		Template map[string][]schedule.Span `json:"template"`
		Window   schedule.DateWindow        `json:"window"`
		Weekdays []string                   `json:"weekdays"`
		Copy     *struct {
			From string   `json:"from"`
			To   []string `json:"to"`
		} `json:"copy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	tpl := make(schedule.WeeklyTemplate, len(req.Template))
	for name, spans := range req.Template {
		day, err := parseWeekday(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tpl[day] = spans
	}

	if req.Copy != nil {
		from, err := parseWeekday(req.Copy.From)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		to := make([]time.Weekday, len(req.Copy.To))
		for i, name := range req.Copy.To {
			day, err := parseWeekday(name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			to[i] = day
		}
		tpl = schedule.CopyWeekday(tpl, from, to)
	}

	allowed := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, name := range req.Weekdays {
		day, err := parseWeekday(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		allowed[day] = true
	}

	created, err := h.availability.ApplyWeeklyTemplate(r.Context(), identity.UserID, tpl, req.Window, allowed)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "availability updated",
		"slots_created": created,
	})
}

// ListForTeacher возвращает бронируемые слоты учителя (с завтрашнего дня)
func (h *AvailabilityHandler) ListForTeacher(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid teacher id", http.StatusBadRequest)
		return
	}

	slots, err := h.availability.ListForTeacherUser(r.Context(), userID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}

	if slots == nil {
		slots = []*model.AvailabilitySlot{}
	}
	respondJSON(w, http.StatusOK, slots)
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func parseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}
