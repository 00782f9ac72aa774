package engine

import (
	"errors"
	"testing"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema so the
// engine runs against real SQL semantics: unique indexes, atomic updates
// and transaction rollback.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Mention{},
		&models.Notification{},
		&models.JobMarker{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "irrelevant"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func getPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		t.Fatalf("load post %d: %v", id, err)
	}
	return &post
}

func getComment(t *testing.T, db *gorm.DB, id uint) *models.Comment {
	t.Helper()
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		t.Fatalf("load comment %d: %v", id, err)
	}
	return &comment
}

func getUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("load user %d: %v", id, err)
	}
	return &user
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

// TestCreateCommentAtomicity forces a failure at the notification step of
// "create comment" and verifies nothing of the operation survives: no
// comment row, no counter change.
func TestCreateCommentAtomicity(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	owner := createUser(t, db, "alice")
	commenter := createUser(t, db, "bob")

	post, err := eng.CreatePost(owner.ID, "hello world")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	forced := errors.New("forced notification failure")
	if err := db.Callback().Create().Before("gorm:create").Register("test_fail_notifications", func(d *gorm.DB) {
		if d.Statement.Table == "notifications" {
			d.AddError(forced)
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if _, err := eng.CreateComment(commenter.ID, post.ID, "nice post"); !errors.Is(err, forced) {
		t.Fatalf("expected forced failure, got %v", err)
	}

	if got := countRows(t, db, &models.Comment{}, ""); got != 0 {
		t.Errorf("comment rows after rollback = %d, want 0", got)
	}
	if got := getPost(t, db, post.ID).CommentCount; got != 0 {
		t.Errorf("comment count after rollback = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Notification{}, ""); got != 0 {
		t.Errorf("notification rows after rollback = %d, want 0", got)
	}

	db.Callback().Create().Remove("test_fail_notifications")
	if _, err := eng.CreateComment(commenter.ID, post.ID, "nice post"); err != nil {
		t.Fatalf("create comment after removing failure: %v", err)
	}
	if got := getPost(t, db, post.ID).CommentCount; got != 1 {
		t.Errorf("comment count = %d, want 1", got)
	}
}

// TestEndToEndScenario walks the canonical flow: a like toggled on and off,
// then a soft delete and recovery with the comment flag cascade.
func TestEndToEndScenario(t *testing.T) {
	db := newTestDB(t)
	eng := New(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post, err := eng.CreatePost(alice.ID, "first post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	liked, count, err := eng.ToggleLike(bob.ID, PostRef(post.ID))
	if err != nil || !liked || count != 1 {
		t.Fatalf("first toggle = (%v, %d, %v), want (true, 1, nil)", liked, count, err)
	}
	if got := countRows(t, db, &models.Notification{}, "type = ? AND recipient_id = ? AND actor_id = ?",
		models.NotificationTypeLike, alice.ID, bob.ID); got != 1 {
		t.Fatalf("like notifications = %d, want 1", got)
	}

	liked, count, err = eng.ToggleLike(bob.ID, PostRef(post.ID))
	if err != nil || liked || count != 0 {
		t.Fatalf("second toggle = (%v, %d, %v), want (false, 0, nil)", liked, count, err)
	}
	if got := countRows(t, db, &models.Like{}, ""); got != 0 {
		t.Fatalf("like rows = %d, want 0", got)
	}
	if got := countRows(t, db, &models.Notification{}, "type = ?", models.NotificationTypeLike); got != 1 {
		t.Fatalf("unlike must not add notifications, got %d", got)
	}

	comment, err := eng.CreateComment(bob.ID, post.ID, "a comment")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := eng.DeletePost(alice.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if p := getPost(t, db, post.ID); !p.IsDeleted || p.DeletedAt == nil {
		t.Fatal("post not soft-deleted")
	}
	if !getComment(t, db, comment.ID).PostDeleted {
		t.Fatal("child comment not flagged post_deleted")
	}

	if err := eng.RecoverPost(alice.ID, post.ID); err != nil {
		t.Fatalf("recover post: %v", err)
	}
	if p := getPost(t, db, post.ID); p.IsDeleted || p.DeletedAt != nil {
		t.Fatal("post not recovered")
	}
	if getComment(t, db, comment.ID).PostDeleted {
		t.Fatal("child comment still flagged after recovery")
	}
}
