package models

import "time"

// Mention records that FromUserID mentioned MentionedUserID in a piece of
// content. Exactly one of PostID and CommentID is set. The unique indexes
// make re-running extraction on an edited body a no-op for mentions already
// recorded against the same content.
type Mention struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FromUserID      uint      `json:"from_user_id" gorm:"not null;index:idx_mention_post,unique;index:idx_mention_comment,unique"`
	MentionedUserID uint      `json:"mentioned_user_id" gorm:"not null;index;index:idx_mention_post,unique;index:idx_mention_comment,unique"`
	PostID          *uint     `json:"post_id,omitempty" gorm:"index:idx_mention_post,unique"`
	CommentID       *uint     `json:"comment_id,omitempty" gorm:"index:idx_mention_comment,unique"`
	CreatedAt       time.Time `json:"created_at"`
}
