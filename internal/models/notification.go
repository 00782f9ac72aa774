package models

import "time"

// NotificationType enumerates the actions that fan out notifications
type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeMention NotificationType = "mention"
	NotificationTypePost    NotificationType = "post"
)

// RefType identifies what a notification's reference id points at
type RefType string

const (
	RefTypePost    RefType = "post"
	RefTypeComment RefType = "comment"
	RefTypeUser    RefType = "user"
)

// Notification represents a durably persisted user notification. References
// are loose (type + id) rather than foreign keys: they may dangle while the
// referenced content sits in its soft-delete window, and are cleaned up
// explicitly when the content is permanently purged.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:20;not null;index"`
	ActorID     uint             `json:"actor_id" gorm:"index;not null"`
	RecipientID uint             `json:"recipient_id" gorm:"index;not null"`
	RefType     RefType          `json:"ref_type" gorm:"size:20;index:idx_notification_ref"`
	RefID       uint             `json:"ref_id" gorm:"index:idx_notification_ref"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
