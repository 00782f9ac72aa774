package repositories

import (
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// PostUpdate is a partial update for a post. Nil fields are left untouched.
type PostUpdate struct {
	Body     *string
	IsEdited *bool
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostByPublicID(publicID string) (*models.Post, error)
	GetPostsByUserID(userID uint, offset, limit int) ([]models.Post, error)
	UpdatePostFields(id uint, upd PostUpdate) error
	MarkDeleted(id uint, at time.Time) error
	MarkRecovered(id uint) error
	FindReapable(cutoff time.Time) ([]models.Post, error)
	DeletePosts(ids []uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by internal ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByPublicID retrieves a post by its public handle
func (r *PostgresPostRepository) GetPostByPublicID(publicID string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("public_id = ?", publicID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves non-deleted posts by a specific user, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// UpdatePostFields applies a partial update. Only non-nil fields are written.
func (r *PostgresPostRepository) UpdatePostFields(id uint, upd PostUpdate) error {
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
	return r.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

// MarkDeleted sets the soft-delete flag and timestamp on a post
func (r *PostgresPostRepository) MarkDeleted(id uint, at time.Time) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": at}).Error
}

// MarkRecovered clears the soft-delete flag and timestamp on a post
func (r *PostgresPostRepository) MarkRecovered(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil}).Error
}

// FindReapable returns posts soft-deleted before the cutoff
func (r *PostgresPostRepository) FindReapable(cutoff time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Find(&posts).Error
	return posts, err
}

// DeletePosts permanently removes post rows, returning how many were
// actually deleted. Used only by the reaper, which tallies counters from
// the returned row count.
func (r *PostgresPostRepository) DeletePosts(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("id IN ?", ids).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}
