package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// Follow creates a follow relationship, maintains both users' denormalized
// follow counters and notifies the followed user, in one transaction.
// Self-follow is permitted at the data layer; only its notification is
// suppressed.
func (e *Engine) Follow(actorID, targetID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		target, uerr := repositories.NewPostgresUserRepository(tx).GetUserByID(targetID)
		if errors.Is(uerr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if uerr != nil {
			return uerr
		}
		if target.IsDeleted {
			return ErrNotFound
		}
		follow := &models.Follow{FollowerID: actorID, FollowingID: targetID}
		if cerr := repositories.NewPostgresFollowRepository(tx).CreateFollow(follow); cerr != nil {
			if errors.Is(cerr, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return fmt.Errorf("insert follow: %w", cerr)
		}
		if err := adjustCounter(tx, &models.User{}, actorID, counterFollowing, +1); err != nil {
			return fmt.Errorf("bump following count: %w", err)
		}
		if err := adjustCounter(tx, &models.User{}, targetID, counterFollowers, +1); err != nil {
			return fmt.Errorf("bump follower count: %w", err)
		}
		return notify(tx, FollowEvent{}, actorID, targetID)
	})
	if err != nil {
		log.Printf("follow failed: follower=%d target=%d: %v", actorID, targetID, err)
	}
	return err
}

// Unfollow removes a follow relationship and decrements both counters.
// Unfollowing someone not followed is ErrNotFound, no state change.
func (e *Engine) Unfollow(actorID, targetID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		removed, derr := repositories.NewPostgresFollowRepository(tx).DeleteFollow(actorID, targetID)
		if derr != nil {
			return fmt.Errorf("delete follow: %w", derr)
		}
		if !removed {
			return ErrNotFound
		}
		if err := adjustCounter(tx, &models.User{}, actorID, counterFollowing, -1); err != nil {
			return fmt.Errorf("drop following count: %w", err)
		}
		if err := adjustCounter(tx, &models.User{}, targetID, counterFollowers, -1); err != nil {
			return fmt.Errorf("drop follower count: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("unfollow failed: follower=%d target=%d: %v", actorID, targetID, err)
	}
	return err
}
