package repositories

import (
	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// MentionRepository defines the interface for mention data operations
type MentionRepository interface {
	CreateMention(mention *models.Mention) error
	GetMentionedUserIDsForPost(fromUserID, postID uint, candidateIDs []uint) ([]uint, error)
	GetMentionedUserIDsForComment(fromUserID, commentID uint, candidateIDs []uint) ([]uint, error)
	DeleteByPostIDs(postIDs []uint) error
	DeleteByCommentIDs(commentIDs []uint) error
}

type postgresMentionRepository struct {
	db *gorm.DB
}

// NewPostgresMentionRepository creates a new Postgres-backed MentionRepository
func NewPostgresMentionRepository(db *gorm.DB) MentionRepository {
	return &postgresMentionRepository{db: db}
}

func (r *postgresMentionRepository) CreateMention(mention *models.Mention) error {
	return r.db.Create(mention).Error
}

// GetMentionedUserIDsForPost returns which of the candidate user IDs already
// hold a mention record by fromUserID on the given post. Used to make mention
// extraction idempotent across edits.
func (r *postgresMentionRepository) GetMentionedUserIDsForPost(fromUserID, postID uint, candidateIDs []uint) ([]uint, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Mention{}).
		Where("from_user_id = ? AND post_id = ? AND mentioned_user_id IN ?", fromUserID, postID, candidateIDs).
		Pluck("mentioned_user_id", &ids).Error
	return ids, err
}

// GetMentionedUserIDsForComment is the comment-content counterpart of
// GetMentionedUserIDsForPost.
func (r *postgresMentionRepository) GetMentionedUserIDsForComment(fromUserID, commentID uint, candidateIDs []uint) ([]uint, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Mention{}).
		Where("from_user_id = ? AND comment_id = ? AND mentioned_user_id IN ?", fromUserID, commentID, candidateIDs).
		Pluck("mentioned_user_id", &ids).Error
	return ids, err
}

// DeleteByPostIDs permanently removes all mentions recorded against the given posts. Used only by the reaper.
func (r *postgresMentionRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Mention{}).Error
}

// DeleteByCommentIDs permanently removes all mentions recorded against the given comments. Used only by the reaper.
func (r *postgresMentionRepository) DeleteByCommentIDs(commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.Mention{}).Error
}
