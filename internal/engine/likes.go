package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// ToggleLike flips the like state for (actor, target): not-liked inserts a
// like row, bumps the target's like count and notifies the owner; liked
// deletes the row and decrements the count with no notification. The
// existence check, the row mutation and the counter update share one
// transaction, and the partial unique indexes on the like table back the
// at-most-one invariant if two toggles race past the check.
//
// Returns the resulting state and the target's like count. Liking deleted
// content fails with ErrContentDeleted.
func (e *Engine) ToggleLike(actorID uint, target ContentRef) (liked bool, likeCount int, err error) {
	err = e.db.Transaction(func(tx *gorm.DB) error {
		ownerID, terr := loadLikeTarget(tx, target)
		if terr != nil {
			return terr
		}

		likes := repositories.NewPostgresLikeRepository(tx)

		var existing *models.Like
		var lerr error
		switch target.Kind {
		case ContentPost:
			existing, lerr = likes.GetLikeForPost(actorID, target.ID)
		case ContentComment:
			existing, lerr = likes.GetLikeForComment(actorID, target.ID)
		}
		if lerr != nil && !errors.Is(lerr, gorm.ErrRecordNotFound) {
			return lerr
		}

		if existing != nil {
			// liked -> not-liked
			if derr := likes.DeleteLikeByID(existing.ID); derr != nil {
				return fmt.Errorf("delete like %d: %w", existing.ID, derr)
			}
			if cerr := adjustLikeCount(tx, target, -1); cerr != nil {
				return cerr
			}
			liked = false
		} else {
			// not-liked -> liked
			like := &models.Like{UserID: actorID}
			targetID := target.ID
			switch target.Kind {
			case ContentPost:
				like.PostID = &targetID
			case ContentComment:
				like.CommentID = &targetID
			}
			if cerr := likes.CreateLike(like); cerr != nil {
				if errors.Is(cerr, gorm.ErrDuplicatedKey) {
					return ErrConflict
				}
				return fmt.Errorf("insert like: %w", cerr)
			}
			if cerr := adjustLikeCount(tx, target, +1); cerr != nil {
				return cerr
			}
			if nerr := notify(tx, LikeEvent{Target: target}, actorID, ownerID); nerr != nil {
				return nerr
			}
			liked = true
		}

		likeCount, err = readLikeCount(tx, target)
		return err
	})
	if err != nil {
		log.Printf("toggle like failed: user=%d %s=%d: %v", actorID, target.Kind, target.ID, err)
		return false, 0, err
	}
	return liked, likeCount, nil
}

// loadLikeTarget verifies the target exists and is live, returning its owner
func loadLikeTarget(tx *gorm.DB, target ContentRef) (ownerID uint, err error) {
	switch target.Kind {
	case ContentPost:
		post, perr := repositories.NewPostgresPostRepository(tx).GetPostByID(target.ID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		if perr != nil {
			return 0, perr
		}
		if post.IsDeleted {
			return 0, ErrContentDeleted
		}
		return post.UserID, nil
	case ContentComment:
		comment, cerr := repositories.NewPostgresCommentRepository(tx).GetCommentByID(target.ID)
		if errors.Is(cerr, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		if cerr != nil {
			return 0, cerr
		}
		if comment.IsDeleted || comment.PostDeleted {
			return 0, ErrContentDeleted
		}
		return comment.UserID, nil
	default:
		return 0, fmt.Errorf("unknown content kind %q", target.Kind)
	}
}

func adjustLikeCount(tx *gorm.DB, target ContentRef, delta int) error {
	if target.Kind == ContentComment {
		return adjustCounter(tx, &models.Comment{}, target.ID, counterLikes, delta)
	}
	return adjustCounter(tx, &models.Post{}, target.ID, counterLikes, delta)
}

func readLikeCount(tx *gorm.DB, target ContentRef) (int, error) {
	var count int
	model := interface{}(&models.Post{})
	if target.Kind == ContentComment {
		model = &models.Comment{}
	}
	err := tx.Model(model).Select(counterLikes).Where("id = ?", target.ID).Scan(&count).Error
	return count, err
}
