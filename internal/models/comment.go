package models

import "time"

// Comment represents a comment on a post. PostDeleted is set while the
// parent post is soft-deleted so read paths can render "post was deleted"
// instead of hiding the comment outright.
type Comment struct {
	ID          uint       `json:"-" gorm:"primaryKey"`
	PublicID    string     `json:"public_id" gorm:"uniqueIndex;size:36;not null"`
	PostID      uint       `json:"post_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Body        string     `json:"body" gorm:"type:text"`
	LikeCount   int        `json:"like_count" gorm:"default:0"`
	PostDeleted bool       `json:"post_deleted" gorm:"default:false;index"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false;index"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	IsEdited    bool       `json:"is_edited" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}
