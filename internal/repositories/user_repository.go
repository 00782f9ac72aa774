package repositories

import (
	"strings"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// UserUpdate is a partial update for a user profile. Nil fields are left
// untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Bio      *string
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	GetUsersByIDs(ids []uint) ([]models.User, error)
	UpdateUser(user *models.User) error
	UpdateUserFields(id uint, upd UserUpdate) error
	SearchUsers(query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	user.Username = strings.ToLower(user.Username)
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by internal ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their public handle
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByUsernames batch-resolves public handles to users in one query.
// Handles that do not resolve are simply absent from the result. Deactivated
// users are excluded.
func (r *PostgresUserRepository) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(usernames))
	for i, u := range usernames {
		lowered[i] = strings.ToLower(u)
	}
	var users []models.User
	err := r.db.Where("username IN ? AND is_deleted = ?", lowered, false).Find(&users).Error
	return users, err
}

// GetUsersByIDs retrieves users by internal IDs
func (r *PostgresUserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateUserFields applies a partial update. Only non-nil fields are written.
func (r *PostgresUserRepository) UpdateUserFields(id uint, upd UserUpdate) error {
	fields := map[string]interface{}{}
	if upd.Username != nil {
		fields["username"] = strings.ToLower(*upd.Username)
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// SearchUsers searches for users by username (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("username LIKE ? AND is_deleted = ?", "%"+strings.ToLower(query)+"%", false).
		Limit(20).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
