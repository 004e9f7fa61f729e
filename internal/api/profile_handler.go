package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/accordo-app/accordo/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 5 << 20 // 5 MiB

type ProfileHandler struct {
	profiles  *service.ProfileService
	imagesDir string
	logger    *zap.Logger
}

func NewProfileHandler(profiles *service.ProfileService, imagesDir string, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, imagesDir: imagesDir, logger: logger}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	user, err := h.profiles.GetUser(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update принимает multipart-форму: текстовые поля профиля и необязательный
// файл picture. Старая картинка удаляется с диска после замены.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	params := service.UpdateProfileParams{}
	if v, ok := formValue(r, "first_name"); ok {
		params.FirstName = &v
	}
	if v, ok := formValue(r, "last_name"); ok {
		params.LastName = &v
	}
	if v, ok := formValue(r, "bio"); ok {
		params.Bio = &v
	}
	if v, ok := formValue(r, "hourly_rate"); ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			http.Error(w, "Invalid hourly rate", http.StatusBadRequest)
			return
		}
		params.HourlyRate = &rate
	}
	if v, ok := formValue(r, "instrument_ids"); ok {
		ids, err := parseIDList(v)
		if err != nil {
			http.Error(w, "Invalid instrument ids", http.StatusBadRequest)
			return
		}
		params.InstrumentIDs = ids
	}

	if err := h.profiles.UpdateProfile(r.Context(), identity.UserID, params); err != nil {
		respondError(w, err)
		return
	}

	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()

		filename, err := h.savePicture(file, header.Filename)
		if err != nil {
			h.logger.Error("Failed to save profile picture", zap.Error(err))
			http.Error(w, "Failed to save picture", http.StatusInternalServerError)
			return
		}

		old, err := h.profiles.UpdateProfilePicture(r.Context(), identity.UserID, &filename)
		if err != nil {
			respondError(w, err)
			return
		}
		h.removePicture(old)
	}

	respondMessage(w, http.StatusOK, "profile updated")
}

// Picture отдаёт файл картинки профиля вызывающего
func (h *ProfileHandler) Picture(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	user, err := h.profiles.GetUser(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	if user.ProfilePicture == nil {
		respondError(w, service.ErrNotFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.imagesDir, *user.ProfilePicture))
}

// DeleteAccount удаляет аккаунт вызывающего со всеми данными
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondError(w, service.ErrInvalidToken)
		return
	}

	picture, err := h.profiles.DeleteAccount(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.removePicture(picture)

	respondMessage(w, http.StatusOK, "account deleted")
}

// savePicture кладёт загруженный файл в каталог картинок под случайным
// именем, сохраняя расширение
func (h *ProfileHandler) savePicture(file io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	if err := os.MkdirAll(h.imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.imagesDir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadSize)); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filename, nil
}

func (h *ProfileHandler) removePicture(filename *string) {
	if filename == nil {
		return
	}
	if err := os.Remove(filepath.Join(h.imagesDir, *filename)); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("Failed to remove old profile picture",
			zap.String("file", *filename),
			zap.Error(err),
		)
	}
}

func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return []int64{}, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
