package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type AdminHandler struct {
	admin     *service.AdminService
	imagesDir string
	logger    *zap.Logger
}

func NewAdminHandler(admin *service.AdminService, imagesDir string, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, imagesDir: imagesDir, logger: logger}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.admin.ListLessons(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lessons)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	picture, err := h.admin.DeleteUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if picture != nil {
		if err := os.Remove(filepath.Join(h.imagesDir, *picture)); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("Failed to remove profile picture", zap.String("file", *picture), zap.Error(err))
		}
	}

	respondMessage(w, http.StatusOK, "user deleted")
}

// DeleteLesson отменяет урок от имени администратора, слот возвращается
// учителю
func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid lesson id", http.StatusBadRequest)
		return
	}

	if err := h.admin.DeleteLesson(r.Context(), lessonID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "lesson deleted")
}
