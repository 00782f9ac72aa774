package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// DeletePost soft-deletes a post and flags every child comment as orphaned
// in the same transaction. The comments keep their own state; the
// post_deleted flag only tells read paths the parent is hidden. A post must
// never end up soft-deleted with un-flagged children, so a failure in either
// step rolls back both.
func (e *Engine) DeletePost(actorID, postID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		post, perr := posts.GetPostByID(postID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if perr != nil {
			return perr
		}
		if post.UserID != actorID {
			return ErrNotOwner
		}
		if post.IsDeleted {
			return ErrConflict
		}
		if err := posts.MarkDeleted(postID, time.Now()); err != nil {
			return fmt.Errorf("soft-delete post: %w", err)
		}
		if err := repositories.NewPostgresCommentRepository(tx).SetPostDeletedFlag(postID, true); err != nil {
			return fmt.Errorf("flag child comments: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("delete post failed: user=%d post=%d: %v", actorID, postID, err)
	}
	return err
}

// RecoverPost reverses a soft delete: it clears the post's deleted state and
// the post_deleted flag on every child comment, all-or-nothing.
func (e *Engine) RecoverPost(actorID, postID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		post, perr := posts.GetPostByID(postID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if perr != nil {
			return perr
		}
		if post.UserID != actorID {
			return ErrNotOwner
		}
		if !post.IsDeleted {
			return ErrConflict
		}
		if err := posts.MarkRecovered(postID); err != nil {
			return fmt.Errorf("recover post: %w", err)
		}
		if err := repositories.NewPostgresCommentRepository(tx).SetPostDeletedFlag(postID, false); err != nil {
			return fmt.Errorf("unflag child comments: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("recover post failed: user=%d post=%d: %v", actorID, postID, err)
	}
	return err
}
