package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/mux"
)

type RatingHandler struct {
	reviews *service.ReviewService
}

func NewRatingHandler(reviews *service.ReviewService) *RatingHandler {
	return &RatingHandler{reviews: reviews}
}

// Create сохраняет оценку учителя вызывающим студентом
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok || identity.Role != model.RoleStudent {
		respondError(w, service.ErrForbidden)
		return
	}

	var req struct {
		TeacherUserID int64 `json:"teacher_user_id"`
		Rating        int   `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	today := schedule.FormatDate(time.Now().UTC())
	review, err := h.reviews.Create(r.Context(), identity.UserID, req.TeacherUserID, req.Rating, today)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

// Eligibility отвечает может ли вызывающий студент оценить учителя
func (h *RatingHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok || identity.Role != model.RoleStudent {
		respondError(w, service.ErrForbidden)
		return
	}

	teacherUserID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid teacher id", http.StatusBadRequest)
		return
	}

	today := schedule.FormatDate(time.Now().UTC())
	canRate, err := h.reviews.CanRate(r.Context(), identity.UserID, teacherUserID, today)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"can_rate": canRate})
}
