package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account. Usernames are the public handles
// referenced by @mentions and are stored lowercase.
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex;size:40;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Password       string     `json:"-"` // Store hashed password, ignore for JSON serialization
	Bio            string     `json:"bio" gorm:"size:200"`
	PostCount      int        `json:"post_count" gorm:"default:0"`
	FollowerCount  int        `json:"follower_count" gorm:"default:0"`
	FollowingCount int        `json:"following_count" gorm:"default:0"`
	IsDeleted      bool       `json:"-" gorm:"default:false;index"`
	DeletedAt      *time.Time `json:"-"`
	Roles          []Role     `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RegisterRequest defines the request body for registering a new user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=200"`
}

// SignInRequest defines the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for updating a user profile
type UpdateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=200"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
