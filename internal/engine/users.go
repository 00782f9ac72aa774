package engine

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// DeactivateUser soft-deletes an account. The handle and email are prefixed
// so the originals become available for re-registration while the account
// sits deactivated; ReactivateUser strips the prefix again.
func (e *Engine) DeactivateUser(userID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		user, uerr := users.GetUserByID(userID)
		if errors.Is(uerr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if uerr != nil {
			return uerr
		}
		if user.IsDeleted {
			return ErrConflict
		}
		now := time.Now()
		prefix := manglePrefix(user.ID)
		user.Username = prefix + user.Username
		user.Email = prefix + user.Email
		user.IsDeleted = true
		user.DeletedAt = &now
		return users.UpdateUser(user)
	})
	if err != nil {
		log.Printf("deactivate user failed: user=%d: %v", userID, err)
	}
	return err
}

// ReactivateUser reverses a soft delete, restoring the original handle and email
func (e *Engine) ReactivateUser(userID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		user, uerr := users.GetUserByID(userID)
		if errors.Is(uerr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if uerr != nil {
			return uerr
		}
		if !user.IsDeleted {
			return ErrConflict
		}
		prefix := manglePrefix(user.ID)
		user.Username = strings.TrimPrefix(user.Username, prefix)
		user.Email = strings.TrimPrefix(user.Email, prefix)
		user.IsDeleted = false
		user.DeletedAt = nil
		return users.UpdateUser(user)
	})
	if err != nil {
		log.Printf("reactivate user failed: user=%d: %v", userID, err)
	}
	return err
}

func manglePrefix(userID uint) string {
	return fmt.Sprintf("deleted_%d_", userID)
}
