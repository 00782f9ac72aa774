package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePost inserts a post, bumps the author's post tally, fans a post
// notification out to every follower and extracts mentions from the body,
// all in one transaction.
func (e *Engine) CreatePost(actorID uint, body string) (*models.Post, error) {
	post := &models.Post{
		PublicID: uuid.NewString(),
		UserID:   actorID,
		Body:     e.sanitizer.Sanitize(body),
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresPostRepository(tx).CreatePost(post); err != nil {
			return fmt.Errorf("insert post: %w", err)
		}
		if err := adjustCounter(tx, &models.User{}, actorID, counterPosts, +1); err != nil {
			return fmt.Errorf("bump post count: %w", err)
		}
		followerIDs, err := repositories.NewPostgresFollowRepository(tx).GetFollowerIDs(actorID)
		if err != nil {
			return fmt.Errorf("load followers: %w", err)
		}
		for _, followerID := range followerIDs {
			if err := notify(tx, PostEvent{PostID: post.ID}, actorID, followerID); err != nil {
				return err
			}
		}
		return e.extractMentions(tx, actorID, PostRef(post.ID), post.Body)
	})
	if err != nil {
		log.Printf("create post failed: user=%d: %v", actorID, err)
		return nil, err
	}
	return post, nil
}

// CreateComment inserts a comment on a live post, bumps the post's comment
// count, notifies the post owner and extracts mentions from the body, all in
// one transaction.
func (e *Engine) CreateComment(actorID, postID uint, body string) (*models.Comment, error) {
	comment := &models.Comment{
		PublicID: uuid.NewString(),
		PostID:   postID,
		UserID:   actorID,
		Body:     e.sanitizer.Sanitize(body),
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		post, perr := repositories.NewPostgresPostRepository(tx).GetPostByID(postID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if perr != nil {
			return perr
		}
		if post.IsDeleted {
			return ErrContentDeleted
		}
		if err := repositories.NewPostgresCommentRepository(tx).CreateComment(comment); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		if err := adjustCounter(tx, &models.Post{}, postID, counterComments, +1); err != nil {
			return fmt.Errorf("bump comment count: %w", err)
		}
		if err := notify(tx, CommentEvent{PostID: postID}, actorID, post.UserID); err != nil {
			return err
		}
		return e.extractMentions(tx, actorID, CommentRef(comment.ID), comment.Body)
	})
	if err != nil {
		log.Printf("create comment failed: user=%d post=%d: %v", actorID, postID, err)
		return nil, err
	}
	return comment, nil
}

// UpdatePost replaces a post's body, marks it edited and re-runs mention
// extraction. Extraction skips handles already recorded for this post, so
// repeated saves do not re-notify previously mentioned users.
func (e *Engine) UpdatePost(actorID, postID uint, body string) (*models.Post, error) {
	var updated *models.Post
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
			return ErrContentDeleted
		}
		clean := e.sanitizer.Sanitize(body)
		edited := true
		if err := posts.UpdatePostFields(postID, repositories.PostUpdate{Body: &clean, IsEdited: &edited}); err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		if err := e.extractMentions(tx, actorID, PostRef(postID), clean); err != nil {
			return err
		}
		post.Body = clean
		post.IsEdited = true
		updated = post
		return nil
	})
	if err != nil {
		log.Printf("update post failed: user=%d post=%d: %v", actorID, postID, err)
		return nil, err
	}
	return updated, nil
}

// UpdateComment replaces a comment's body, marks it edited and re-runs
// mention extraction with the same idempotence rule as UpdatePost.
func (e *Engine) UpdateComment(actorID, commentID uint, body string) (*models.Comment, error) {
	var updated *models.Comment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewPostgresCommentRepository(tx)
		comment, cerr := comments.GetCommentByID(commentID)
		if errors.Is(cerr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if cerr != nil {
			return cerr
		}
		if comment.UserID != actorID {
			return ErrNotOwner
		}
		if comment.IsDeleted || comment.PostDeleted {
			return ErrContentDeleted
		}
		clean := e.sanitizer.Sanitize(body)
		edited := true
		if err := comments.UpdateCommentFields(commentID, repositories.CommentUpdate{Body: &clean, IsEdited: &edited}); err != nil {
			return fmt.Errorf("update comment: %w", err)
		}
		if err := e.extractMentions(tx, actorID, CommentRef(commentID), clean); err != nil {
			return err
		}
		comment.Body = clean
		comment.IsEdited = true
		updated = comment
		return nil
	})
	if err != nil {
		log.Printf("update comment failed: user=%d comment=%d: %v", actorID, commentID, err)
		return nil, err
	}
	return updated, nil
}

// DeleteComment soft-deletes a single comment and decrements its post's
// comment count in the same transaction.
func (e *Engine) DeleteComment(actorID, commentID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewPostgresCommentRepository(tx)
		comment, cerr := comments.GetCommentByID(commentID)
		if errors.Is(cerr, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if cerr != nil {
			return cerr
		}
		if comment.UserID != actorID {
			return ErrNotOwner
		}
		if comment.IsDeleted {
			return ErrNotFound
		}
		if err := comments.MarkDeleted(commentID, time.Now()); err != nil {
			return fmt.Errorf("soft-delete comment: %w", err)
		}
		return adjustCounter(tx, &models.Post{}, comment.PostID, counterComments, -1)
	})
	if err != nil {
		log.Printf("delete comment failed: user=%d comment=%d: %v", actorID, commentID, err)
	}
	return err
}
