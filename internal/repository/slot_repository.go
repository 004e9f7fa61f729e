package repository

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (teacher_id, slot_date, start_minute, end_minute)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.TeacherID,
		slot.Date,
		int(slot.Start),
		int(slot.End),
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// ListByTeacherFrom получает слоты учителя начиная с указанной даты
func (r *SlotRepository) ListByTeacherFrom(ctx context.Context, teacherID int64, fromDate string) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, teacher_id, to_char(slot_date, 'YYYY-MM-DD'), start_minute, end_minute, created_at
		FROM availability_slots
		WHERE teacher_id = $1
		  AND slot_date >= $2::date
		ORDER BY slot_date, start_minute
	`

	rows, err := r.pool.Query(ctx, query, teacherID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}
	defer rows.Close()

	var slots []*model.AvailabilitySlot
	for rows.Next() {
		var slot model.AvailabilitySlot
		var start, end int
		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.Date,
			&start,
			&end,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slot.Start = schedule.TimeOfDay(start)
		slot.End = schedule.TimeOfDay(end)
		slots = append(slots, &slot)
	}

	return slots, nil
}

// ReplaceForDates заменяет слоты учителя на выбранные даты одной транзакцией:
// удаляет все слоты с датой из dates и вставляет newRanges. Либо применяется
// вся замена, либо ничего.
func (r *SlotRepository) ReplaceForDates(ctx context.Context, teacherID int64, dates []string, newRanges []schedule.TimeRange) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(
		ctx,
		`DELETE FROM availability_slots WHERE teacher_id = $1 AND slot_date = ANY($2::date[])`,
		teacherID, dates,
	)
	if err != nil {
		return fmt.Errorf("delete slots for dates: %w", err)
	}

	for _, rng := range newRanges {
		_, err = tx.Exec(
			ctx,
			`INSERT INTO availability_slots (teacher_id, slot_date, start_minute, end_minute) VALUES ($1, $2::date, $3, $4)`,
			teacherID, rng.Date, int(rng.Start), int(rng.End),
		)
		if err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// DeleteExpiredBefore удаляет свободные слоты с датой раньше указанной
func (r *SlotRepository) DeleteExpiredBefore(ctx context.Context, date string) (int64, error) {
	query := `DELETE FROM availability_slots WHERE slot_date < $1::date`

	result, err := r.pool.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("delete expired slots: %w", err)
	}

	return result.RowsAffected(), nil
}
