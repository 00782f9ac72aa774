package engine

import (
	"errors"
	"testing"

	"github.com/adnan-k/sociograph/backend/internal/models"
)

func TestSoftDeleteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "a post to delete")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	c1, err := eng.CreateComment(bob.ID, post.ID, "first")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	c2, err := eng.CreateComment(alice.ID, post.ID, "second")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	p := getPost(t, db, post.ID)
	if !p.IsDeleted || p.DeletedAt == nil {
		t.Fatal("post not marked deleted")
	}
	for _, c := range []*models.Comment{c1, c2} {
		got := getComment(t, db, c.ID)
		if !got.PostDeleted {
			t.Errorf("comment %d not flagged post_deleted", c.ID)
		}
		if got.IsDeleted {
			t.Errorf("comment %d must not be individually soft-deleted by the cascade", c.ID)
		}
		if got.Body != c.Body {
			t.Errorf("comment %d body changed by cascade", c.ID)
		}
	}

	if err := eng.RecoverPost(alice.ID, post.ID); err != nil {
		t.Fatalf("recover post: %v", err)
	}
	p = getPost(t, db, post.ID)
	if p.IsDeleted || p.DeletedAt != nil {
		t.Fatal("post not recovered")
	}
	if p.Body != post.Body || p.CommentCount != 2 {
		t.Error("post fields changed by delete/recover round trip")
	}
	for _, c := range []*models.Comment{c1, c2} {
		if getComment(t, db, c.ID).PostDeleted {
			t.Errorf("comment %d still flagged after recovery", c.ID)
		}
	}
}

func TestDeletePostStateErrors(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "guarded")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := eng.DeletePost(bob.ID, post.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("delete by non-owner: got %v, want ErrNotOwner", err)
	}
	if err := eng.RecoverPost(alice.ID, post.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("recover live post: got %v, want ErrConflict", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("double delete: got %v, want ErrConflict", err)
	}
	if err := eng.DeletePost(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing post: got %v, want ErrNotFound", err)
	}
}

func TestCreateCommentOnDeletedPost(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "going away")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	if _, err := eng.CreateComment(bob.ID, post.ID, "too late"); !errors.Is(err, ErrContentDeleted) {
		t.Errorf("comment on deleted post: got %v, want ErrContentDeleted", err)
	}
	if got := getPost(t, db, post.ID).CommentCount; got != 0 {
		t.Errorf("comment count = %d, want 0", got)
	}
}

func TestDeleteCommentDecrementsCount(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := eng.CreateComment(bob.ID, post.ID, "to remove")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if got := getPost(t, db, post.ID).CommentCount; got != 1 {
		t.Fatalf("comment count = %d, want 1", got)
	}

	if err := eng.DeleteComment(alice.ID, comment.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("delete by non-owner: got %v, want ErrNotOwner", err)
	}
	if err := eng.DeleteComment(bob.ID, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if got := getPost(t, db, post.ID).CommentCount; got != 0 {
		t.Errorf("comment count = %d, want 0", got)
	}
	if err := eng.DeleteComment(bob.ID, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}
