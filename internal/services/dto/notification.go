package dto

import "homepro_backend/internal/models"

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
