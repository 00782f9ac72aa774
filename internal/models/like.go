package models

import "time"

// Like represents a like on a post or a comment. Exactly one of PostID and
// CommentID is set. The two partial unique indexes enforce at most one like
// per (user, target) pair; rows where the indexed target column is NULL are
// exempt from that index in both Postgres and SQLite.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_user_post_like,unique;index:idx_user_comment_like,unique"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index:idx_user_post_like,unique"`
	CommentID *uint     `json:"comment_id,omitempty" gorm:"index:idx_user_comment_like,unique"`
	CreatedAt time.Time `json:"created_at"`
}
