package repositories

import (
	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLikeByID(id uint) error
	GetLikeForPost(userID, postID uint) (*models.Like, error)
	GetLikeForComment(userID, commentID uint) (*models.Like, error)
	CountForPost(postID uint) (int64, error)
	CountForComment(commentID uint) (int64, error)
	DeleteByPostIDs(postIDs []uint) error
	DeleteByCommentIDs(commentIDs []uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like row. A unique-constraint violation means the
// (user, target) pair already holds a like.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLikeByID deletes a like by its primary key
func (r *PostgresLikeRepository) DeleteLikeByID(id uint) error {
	return r.db.Delete(&models.Like{}, id).Error
}

// GetLikeForPost retrieves the like a user holds on a post, if any
func (r *PostgresLikeRepository) GetLikeForPost(userID, postID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikeForComment retrieves the like a user holds on a comment, if any
func (r *PostgresLikeRepository) GetLikeForComment(userID, commentID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// CountForPost counts the like rows referencing a post
func (r *PostgresLikeRepository) CountForPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountForComment counts the like rows referencing a comment
func (r *PostgresLikeRepository) CountForComment(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// DeleteByPostIDs permanently removes all likes on the given posts. Used only by the reaper.
func (r *PostgresLikeRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error
}

// DeleteByCommentIDs permanently removes all likes on the given comments. Used only by the reaper.
func (r *PostgresLikeRepository) DeleteByCommentIDs(commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.Like{}).Error
}
