package engine

import (
	"fmt"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationEvent is the closed set of actions that fan out notifications.
// Each variant carries exactly the context its type requires, so a
// notification with a missing reference is unrepresentable.
type NotificationEvent interface {
	row(actorID uint) models.Notification
}

// LikeEvent notifies a content owner that their post or comment was liked
type LikeEvent struct {
	Target ContentRef
}

func (e LikeEvent) row(uint) models.Notification {
	return models.Notification{Type: models.NotificationTypeLike, RefType: e.Target.refType(), RefID: e.Target.ID}
}

// CommentEvent notifies a post owner that their post received a comment
type CommentEvent struct {
	PostID uint
}

func (e CommentEvent) row(uint) models.Notification {
	return models.Notification{Type: models.NotificationTypeComment, RefType: models.RefTypePost, RefID: e.PostID}
}

// PostEvent notifies a follower that someone they follow published a post
type PostEvent struct {
	PostID uint
}

func (e PostEvent) row(uint) models.Notification {
	return models.Notification{Type: models.NotificationTypePost, RefType: models.RefTypePost, RefID: e.PostID}
}

// MentionEvent notifies a user that they were mentioned in a post or comment
type MentionEvent struct {
	Target ContentRef
}

func (e MentionEvent) row(uint) models.Notification {
	return models.Notification{Type: models.NotificationTypeMention, RefType: e.Target.refType(), RefID: e.Target.ID}
}

// FollowEvent notifies a user that someone started following them
type FollowEvent struct{}

func (e FollowEvent) row(actorID uint) models.Notification {
	return models.Notification{Type: models.NotificationTypeFollow, RefType: models.RefTypeUser, RefID: actorID}
}

// notify persists one unread notification row for the event inside the
// caller's transaction. recipient == actor is an expected, silent no-op.
// An insert failure propagates and aborts the enclosing operation; a
// notification is never silently dropped when its trigger succeeded.
func notify(tx *gorm.DB, event NotificationEvent, actorID, recipientID uint) error {
	if actorID == recipientID {
		return nil
	}
	n := event.row(actorID)
	n.ActorID = actorID
	n.RecipientID = recipientID
	if err := repositories.NewPostgresNotificationRepository(tx).CreateNotification(&n); err != nil {
		return fmt.Errorf("notify %s recipient=%d actor=%d: %w", n.Type, recipientID, actorID, err)
	}
	return nil
}
