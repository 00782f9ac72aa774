package engine

import (
	"testing"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
)

// backdateDeletion rewrites a soft-deleted post's deletion timestamp so it
// falls outside the retention window.
func backdateDeletion(t *testing.T, db *gorm.DB, postID uint, age time.Duration) {
	t.Helper()
	at := time.Now().Add(-age)
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Update("deleted_at", at).Error; err != nil {
		t.Fatalf("backdate deletion: %v", err)
	}
}

func TestReapPurgesFully(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post, err := eng.CreatePost(alice.ID, "doomed post mentioning @bob")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := eng.CreateComment(bob.ID, post.ID, "doomed comment")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, _, err := eng.ToggleLike(bob.ID, PostRef(post.ID)); err != nil {
		t.Fatalf("like post: %v", err)
	}
	if _, _, err := eng.ToggleLike(alice.ID, CommentRef(comment.ID)); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	keeper, err := eng.CreatePost(alice.ID, "survivor")
	if err != nil {
		t.Fatalf("create keeper post: %v", err)
	}
	if got := getUser(t, db, alice.ID).PostCount; got != 2 {
		t.Fatalf("post count = %d, want 2", got)
	}

	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	backdateDeletion(t, db, post.ID, 31*24*time.Hour)

	reaper := NewReaper(db, 30*24*time.Hour, 24*time.Hour)
	purged, err := reaper.RunOnce(time.Now())
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}

	if got := countRows(t, db, &models.Post{}, "id = ?", post.ID); got != 0 {
		t.Errorf("post rows = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Comment{}, "post_id = ?", post.ID); got != 0 {
		t.Errorf("comment rows = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Like{}, ""); got != 0 {
		t.Errorf("like rows = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Mention{}, ""); got != 0 {
		t.Errorf("mention rows = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Notification{}, "ref_type = ? AND ref_id = ?", models.RefTypePost, post.ID); got != 0 {
		t.Errorf("post notifications = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Notification{}, "ref_type = ? AND ref_id = ?", models.RefTypeComment, comment.ID); got != 0 {
		t.Errorf("comment notifications = %d, want 0", got)
	}

	// owner tally drops by exactly one; the surviving post is untouched
	if got := getUser(t, db, alice.ID).PostCount; got != 1 {
		t.Errorf("post count = %d, want 1", got)
	}
	if got := countRows(t, db, &models.Post{}, "id = ?", keeper.ID); got != 1 {
		t.Errorf("keeper post purged")
	}
}

func TestReapKeepsRecentSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	post, err := eng.CreatePost(alice.ID, "recently deleted")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	backdateDeletion(t, db, post.ID, 24*time.Hour)

	reaper := NewReaper(db, 30*24*time.Hour, 24*time.Hour)
	purged, err := reaper.RunOnce(time.Now())
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if purged != 0 {
		t.Errorf("purged = %d, want 0 inside retention window", purged)
	}
	if got := countRows(t, db, &models.Post{}, "id = ?", post.ID); got != 1 {
		t.Errorf("post purged before retention elapsed")
	}
}

func TestReaperMarkerCadence(t *testing.T) {
	db := newTestDB(t)
	reaper := NewReaper(db, 30*24*time.Hour, 24*time.Hour)

	now := time.Now()
	ran, _, err := reaper.RunDue(now)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !ran {
		t.Fatal("first RunDue must run")
	}

	ran, _, err = reaper.RunDue(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if ran {
		t.Error("RunDue ran again before the interval elapsed")
	}

	ran, _, err = reaper.RunDue(now.Add(25 * time.Hour))
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if !ran {
		t.Error("RunDue must run once the interval elapsed")
	}
}

func TestReapTallyTracksDeletedRows(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	post, err := eng.CreatePost(alice.ID, "raced away")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	backdateDeletion(t, db, post.ID, 31*24*time.Hour)

	// Simulate a second purger winning the race: the post row vanishes
	// after the snapshot was taken but before this purge deletes it.
	err = db.Callback().Delete().Before("gorm:delete").Register("test_steal_posts", func(d *gorm.DB) {
		if d.Statement.Table == "posts" {
			d.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM posts WHERE id = ?", post.ID)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	reaper := NewReaper(db, 30*24*time.Hour, 24*time.Hour)
	purged, err := reaper.RunOnce(time.Now())
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if err := db.Callback().Delete().Remove("test_steal_posts"); err != nil {
		t.Fatalf("remove callback: %v", err)
	}

	if purged != 0 {
		t.Errorf("purged = %d, want 0 when another purge removed the rows", purged)
	}
	// The tally was already settled by whoever deleted the rows; this run
	// must not move it again.
	if got := getUser(t, db, alice.ID).PostCount; got != 1 {
		t.Errorf("post count = %d, want 1 (no decrement for rows deleted elsewhere)", got)
	}
}
