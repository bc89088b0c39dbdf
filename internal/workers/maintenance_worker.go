package workers

import (
	"context"
	"time"

	"homepro_backend/internal/logger"
	"homepro_backend/internal/repositories"
)

const (
	tokenSweepInterval        = 6 * time.Hour
	notificationSweepInterval = 24 * time.Hour
	notificationRetention     = 30 * 24 * time.Hour
)

// MaintenanceWorker sweeps expired refresh tokens and old read notifications.
type MaintenanceWorker struct {
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewMaintenanceWorker(
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) *MaintenanceWorker {
	return &MaintenanceWorker{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (w *MaintenanceWorker) Start(ctx context.Context) {
	go w.sweepExpiredTokens(ctx)
	go w.sweepOldNotifications(ctx)
}

func (w *MaintenanceWorker) sweepExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token sweep worker stopped")
			return
		case <-ticker.C:
			removed, err := w.userRepo.CleanExpiredRefreshTokens(ctx)
			if err != nil {
				logger.Error("failed to clean expired refresh tokens", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("cleaned expired refresh tokens", "count", removed)
			}
		}
	}
}

func (w *MaintenanceWorker) sweepOldNotifications(ctx context.Context) {
	ticker := time.NewTicker(notificationSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification sweep worker stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-notificationRetention)
			removed, err := w.notificationRepo.DeleteReadOlderThan(ctx, cutoff)
			if err != nil {
				logger.Error("failed to delete old notifications", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("deleted old read notifications", "count", removed)
			}
		}
	}
}
