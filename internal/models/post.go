package models

import "time"

// Post represents a top-level content item. PublicID is the externally
// exposed handle; ID is the internal sequential key.
type Post struct {
	ID           uint       `json:"-" gorm:"primaryKey"`
	PublicID     string     `json:"public_id" gorm:"uniqueIndex;size:36;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	Body         string     `json:"body" gorm:"type:text"`
	LikeCount    int        `json:"like_count" gorm:"default:0"`
	CommentCount int        `json:"comment_count" gorm:"default:0"`
	IsDeleted    bool       `json:"is_deleted" gorm:"default:false;index"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	IsEdited     bool       `json:"is_edited" gorm:"default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}
