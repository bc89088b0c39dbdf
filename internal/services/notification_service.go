package services

import (
	"context"
	"encoding/json"

	"homepro_backend/internal/logger"
	"homepro_backend/internal/models"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/services/dto"

	"homepro_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type NotificationService interface {
	ListUserNotifications(ctx context.Context, userID string, page, pageSize int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// Notify persists a notification for a user. Failures are logged and
	// swallowed: a broken notification must never fail the operation that
	// triggered it.
	Notify(ctx context.Context, userID, notificationType, title, message string, data map[string]string)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListUserNotifications(ctx context.Context, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	offset := (page - 1) * pageSize
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
	}, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
	if apperrors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotFound(err, "notification", "Notification not found")
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, userID, notificationType, title, message string, data map[string]string) {
	var payload datatypes.JSON
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.CtxWithError(ctx, "failed to encode notification data", err, "type", notificationType)
			return
		}
		payload = datatypes.JSON(raw)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    payload,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.CtxWithError(ctx, "failed to create notification", err,
			"user_id", userID,
			"type", notificationType,
		)
	}
}
