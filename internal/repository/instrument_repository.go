package repository

import (
	"context"
	"fmt"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InstrumentRepository struct {
	pool *pgxpool.Pool
}

func NewInstrumentRepository(pool *pgxpool.Pool) *InstrumentRepository {
	return &InstrumentRepository{pool: pool}
}

// List получает каталог инструментов
func (r *InstrumentRepository) List(ctx context.Context) ([]model.Instrument, error) {
	query := `
		SELECT id, name, category, description
		FROM instruments
		ORDER BY category, name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
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
