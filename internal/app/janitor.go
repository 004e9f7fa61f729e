package app

import (
	"context"
	"time"

	"github.com/accordo-app/accordo/internal/service"
	"go.uber.org/zap"
)

// Janitor управляет фоновыми задачами
type Janitor struct {
	availability *service.AvailabilityService
	logger       *zap.Logger
	stopChan     chan struct{}
}

// NewJanitor создаёт новый планировщик фоновых задач
func NewJanitor(availability *service.AvailabilityService, logger *zap.Logger) *Janitor {
	return &Janitor{
		availability: availability,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting background janitor")

	go j.runExpiredSlotPurge(ctx)
}

// Stop останавливает фоновые задачи
func (j *Janitor) Stop() {
	j.logger.Info("Stopping background janitor")
	close(j.stopChan)
}

// runExpiredSlotPurge периодически удаляет слоты с прошедшей датой
func (j *Janitor) runExpiredSlotPurge(ctx context.Context) {
	// Первый запуск сразу при старте
	j.purgeExpiredSlots(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.purgeExpiredSlots(ctx)
		case <-j.stopChan:
			j.logger.Info("Expired slot purge task stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Expired slot purge task cancelled")
			return
		}
	}
}

// purgeExpiredSlots удаляет свободные слоты, чья дата уже прошла.
// Уроки не трогаем: история нужна для оценок и статистики.
func (j *Janitor) purgeExpiredSlots(ctx context.Context) {
	removed, err := j.availability.PurgeExpired(ctx, time.Now())
	if err != nil {
		j.logger.Error("Failed to purge expired slots", zap.Error(err))
		return
	}

	if removed > 0 {
		j.logger.Info("Expired slots purged", zap.Int64("removed", removed))
	}
}
