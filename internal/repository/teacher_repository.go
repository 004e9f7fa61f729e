package repository

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

// CreateProfile создаёт профиль учителя для пользователя
func (r *TeacherRepository) CreateProfile(ctx context.Context, userID int64) (*model.TeacherProfile, error) {
	query := `
		INSERT INTO teacher_profiles (user_id)
		VALUES ($1)
		RETURNING id
	`

	profile := model.TeacherProfile{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&profile.ID)
	if err != nil {
		return nil, fmt.Errorf("create teacher profile: %w", err)
	}

	return &profile, nil
}

// GetByUserID получает профиль учителя по ID пользователя
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*model.TeacherProfile, error) {
	query := `
		SELECT id, user_id, bio, hourly_rate
		FROM teacher_profiles
		WHERE user_id = $1
	`

	var profile model.TeacherProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.HourlyRate,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Профиль не найден
		}
		return nil, fmt.Errorf("get teacher profile by user id: %w", err)
	}

	return &profile, nil
}

// UpdateProfile обновляет описание и ставку учителя
func (r *TeacherRepository) UpdateProfile(ctx context.Context, id int64, bio *string, hourlyRate *float64) error {
	query := `
		UPDATE teacher_profiles
		SET bio = COALESCE($1, bio), hourly_rate = COALESCE($2, hourly_rate)
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, bio, hourlyRate, id)
	if err != nil {
		return fmt.Errorf("update teacher profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("teacher profile not found")
	}

	return nil
}

// ReplaceInstruments перезаписывает набор инструментов учителя
func (r *TeacherRepository) ReplaceInstruments(ctx context.Context, teacherID int64, instrumentIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM teacher_instruments WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return fmt.Errorf("delete teacher instruments: %w", err)
	}

	for _, instrumentID := range instrumentIDs {
		_, err = tx.Exec(
			ctx,
			`INSERT INTO teacher_instruments (teacher_id, instrument_id) VALUES ($1, $2)`,
			teacherID, instrumentID,
		)
		if err != nil {
			return fmt.Errorf("insert teacher instrument: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetInstruments получает инструменты учителя
func (r *TeacherRepository) GetInstruments(ctx context.Context, teacherID int64) ([]model.Instrument, error) {
	query := `
		SELECT i.id, i.name, i.category, i.description
		FROM teacher_instruments ti
		JOIN instruments i ON i.id = ti.instrument_id
		WHERE ti.teacher_id = $1
		ORDER BY i.name
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher instruments: %w", err)
	}
	defer rows.Close()

	var instruments []model.Instrument
	for rows.Next() {
		var instrument model.Instrument
		err := rows.Scan(
			&instrument.ID,
			&instrument.Name,
			&instrument.Category,
			&instrument.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		instruments = append(instruments, instrument)
	}

	return instruments, nil
}

// ListTeachers получает публичный каталог учителей со средней оценкой
func (r *TeacherRepository) ListTeachers(ctx context.Context) ([]*model.TeacherListing, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.profile_picture, tp.id, tp.hourly_rate,
		       COALESCE((SELECT AVG(rating) FROM reviews WHERE teacher_id = tp.id), 0)
		FROM users u
		JOIN teacher_profiles tp ON tp.user_id = u.id
		WHERE u.role = 'teacher'
		ORDER BY u.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var listings []*model.TeacherListing
	var profileIDs []int64
	for rows.Next() {
		var listing model.TeacherListing
		var profileID int64
		err := rows.Scan(
			&listing.UserID,
			&listing.FirstName,
			&listing.LastName,
			&listing.ProfilePicture,
			&profileID,
			&listing.HourlyRate,
			&listing.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("scan teacher listing: %w", err)
		}
		listings = append(listings, &listing)
		profileIDs = append(profileIDs, profileID)
	}
	rows.Close()

	for i, listing := range listings {
		instruments, err := r.GetInstruments(ctx, profileIDs[i])
		if err != nil {
			return nil, err
		}
		if instruments == nil {
			instruments = []model.Instrument{}
		}
		listing.Instruments = instruments
	}

	return listings, nil
}
