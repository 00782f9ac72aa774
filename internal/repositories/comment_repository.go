package repositories

import (
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// CommentUpdate is a partial update for a comment. Nil fields are left untouched.
type CommentUpdate struct {
	Body     *string
	IsEdited *bool
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentByPublicID(publicID string) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	GetCommentIDsByPostIDs(postIDs []uint) ([]uint, error)
	UpdateCommentFields(id uint, upd CommentUpdate) error
	SetPostDeletedFlag(postID uint, flagged bool) error
	MarkDeleted(id uint, at time.Time) error
	DeleteByPostIDs(postIDs []uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by internal ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentByPublicID retrieves a comment by its public handle
func (r *PostgresCommentRepository) GetCommentByPublicID(publicID string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("public_id = ?", publicID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all non-deleted comments for a specific post.
// Comments whose parent post is soft-deleted are included, carrying the
// post_deleted flag for the read path to interpret.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentIDsByPostIDs returns the IDs of all comments belonging to the given posts
func (r *PostgresCommentRepository) GetCommentIDsByPostIDs(postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Comment{}).Where("post_id IN ?", postIDs).Pluck("id", &ids).Error
	return ids, err
}

// UpdateCommentFields applies a partial update. Only non-nil fields are written.
func (r *PostgresCommentRepository) UpdateCommentFields(id uint, upd CommentUpdate) error {
	fields := map[string]interface{}{}
	if upd.Body != nil {
		fields["body"] = *upd.Body
	}
	if upd.IsEdited != nil {
		fields["is_edited"] = *upd.IsEdited
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Updates(fields).Error
}

// SetPostDeletedFlag bulk-sets the post_deleted flag on every comment of a post
func (r *PostgresCommentRepository) SetPostDeletedFlag(postID uint, flagged bool) error {
	return r.db.Model(&models.Comment{}).Where("post_id = ?", postID).
		Update("post_deleted", flagged).Error
}

// MarkDeleted sets the soft-delete flag and timestamp on a comment
func (r *PostgresCommentRepository) MarkDeleted(id uint, at time.Time) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": at}).Error
}

// DeleteByPostIDs permanently removes all comments of the given posts. Used only by the reaper.
func (r *PostgresCommentRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}
