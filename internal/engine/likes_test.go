package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

func TestToggleLikeParity(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "toggle me")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	const n = 5
	var liked bool
	for i := 0; i < n; i++ {
		var count int
		liked, count, err = eng.ToggleLike(bob.ID, PostRef(post.ID))
		if err != nil {
			t.Fatalf("toggle %d: %v", i+1, err)
		}
		rows := countRows(t, db, &models.Like{}, "post_id = ?", post.ID)
		if int64(count) != rows {
			t.Fatalf("toggle %d: like_count=%d but %d like rows", i+1, count, rows)
		}
		if got := getPost(t, db, post.ID).LikeCount; got != count {
			t.Fatalf("toggle %d: persisted like_count=%d, returned %d", i+1, got, count)
		}
	}

	// odd number of toggles ends liked
	if !liked {
		t.Error("expected liked after odd toggle count")
	}
	if got := getPost(t, db, post.ID).LikeCount; got != 1 {
		t.Errorf("final like_count = %d, want 1", got)
	}
	if got := countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", bob.ID, post.ID); got != 1 {
		t.Errorf("like rows = %d, want 1", got)
	}
}

func TestToggleLikeOwnPostNoNotification(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	post, err := eng.CreatePost(alice.ID, "my own post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	liked, count, err := eng.ToggleLike(alice.ID, PostRef(post.ID))
	if err != nil || !liked || count != 1 {
		t.Fatalf("self toggle = (%v, %d, %v), want (true, 1, nil)", liked, count, err)
	}
	if got := countRows(t, db, &models.Notification{}, ""); got != 0 {
		t.Errorf("notifications = %d, want 0 for self-like", got)
	}
}

func TestToggleLikeComment(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := eng.CreateComment(bob.ID, post.ID, "comment")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	liked, count, err := eng.ToggleLike(alice.ID, CommentRef(comment.ID))
	if err != nil || !liked || count != 1 {
		t.Fatalf("toggle = (%v, %d, %v), want (true, 1, nil)", liked, count, err)
	}
	if got := getComment(t, db, comment.ID).LikeCount; got != 1 {
		t.Errorf("comment like_count = %d, want 1", got)
	}
	if got := countRows(t, db, &models.Notification{}, "type = ? AND recipient_id = ?",
		models.NotificationTypeLike, bob.ID); got != 1 {
		t.Errorf("like notifications to comment owner = %d, want 1", got)
	}
	// post like count untouched by a comment like
	if got := getPost(t, db, post.ID).LikeCount; got != 0 {
		t.Errorf("post like_count = %d, want 0", got)
	}
}

func TestToggleLikeDeletedContent(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "soon gone")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := eng.CreateComment(bob.ID, post.ID, "orphan to be")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	if _, _, err := eng.ToggleLike(bob.ID, PostRef(post.ID)); !errors.Is(err, ErrContentDeleted) {
		t.Errorf("like deleted post: got %v, want ErrContentDeleted", err)
	}
	// comments under a deleted post are not likeable either
	if _, _, err := eng.ToggleLike(alice.ID, CommentRef(comment.ID)); !errors.Is(err, ErrContentDeleted) {
		t.Errorf("like orphaned comment: got %v, want ErrContentDeleted", err)
	}
}

func TestToggleLikeMissingTarget(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)
	bob := createUser(t, db, "bob")

	if _, _, err := eng.ToggleLike(bob.ID, PostRef(9999)); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, _, err := eng.ToggleLike(bob.ID, CommentRef(9999)); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestToggleLikeDuplicateInsertConflict(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post, err := eng.CreatePost(alice.ID, "contended post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	// Simulate a concurrent toggler winning the race: an identical like row
	// lands after the existence check but before this toggle's insert.
	err = db.Callback().Create().Before("gorm:create").Register("test_race_like", func(d *gorm.DB) {
		if d.Statement.Table == "likes" {
			d.Session(&gorm.Session{NewDB: true}).
				Exec("INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)",
					bob.ID, post.ID, time.Now())
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, _, err = eng.ToggleLike(bob.ID, PostRef(post.ID))
	if rerr := db.Callback().Create().Remove("test_race_like"); rerr != nil {
		t.Fatalf("remove callback: %v", rerr)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate like insert, got %v", err)
	}

	// The losing toggle rolled back whole, counter included.
	if got := countRows(t, db, &models.Like{}, "post_id = ?", post.ID); got != 0 {
		t.Errorf("like rows = %d, want 0 after rollback", got)
	}
	if got := getPost(t, db, post.ID).LikeCount; got != 0 {
		t.Errorf("like_count = %d, want 0 after rollback", got)
	}
}
