package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

// reaperMarkerName is the JobMarker row under which the reaper records its
// last run, so restarts do not reset the cadence.
const reaperMarkerName = "reaper"

// reaperPollEvery is how often the loop re-checks the durable marker. The
// marker, not the ticker, decides whether a purge actually runs.
const reaperPollEvery = time.Hour

// Reaper permanently purges posts that have been soft-deleted longer than
// the retention window, together with every dependent row (notifications,
// mentions, likes, comments) and the owners' post-count tallies. Each purge
// is one transaction.
type Reaper struct {
	db        *gorm.DB
	retention time.Duration
	interval  time.Duration
}

// NewReaper creates a Reaper. retention is how long soft-deleted posts stay
// recoverable; interval is the minimum time between purges.
func NewReaper(db *gorm.DB, retention, interval time.Duration) *Reaper {
	return &Reaper{db: db, retention: retention, interval: interval}
}

// Start runs the reaper loop in a background goroutine until ctx is cancelled
func (r *Reaper) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Reaper) loop(ctx context.Context) {
	ticker := time.NewTicker(reaperPollEvery)
	defer ticker.Stop()
	for {
		ran, purged, err := r.RunDue(time.Now())
		if err != nil {
			log.Printf("reaper: %v", err)
		} else if ran {
			log.Printf("reaper: purged %d posts", purged)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunDue purges once if the reap interval has elapsed since the last
// recorded run, then advances the marker. Returns whether a purge ran and
// how many posts it removed.
func (r *Reaper) RunDue(now time.Time) (bool, int, error) {
	markers := repositories.NewPostgresMarkerRepository(r.db)
	last, ok, err := markers.GetLastRun(reaperMarkerName)
	if err != nil {
		return false, 0, fmt.Errorf("read reaper marker: %w", err)
	}
	if ok && now.Sub(last) < r.interval {
		return false, 0, nil
	}
	purged, err := r.RunOnce(now)
	if err != nil {
		return false, 0, err
	}
	if err := markers.SetLastRun(reaperMarkerName, now); err != nil {
		return true, purged, fmt.Errorf("advance reaper marker: %w", err)
	}
	return true, purged, nil
}

// RunOnce purges every post soft-deleted before now minus the retention
// window. Deletion order matters: notifications reference content loosely
// (no foreign key), so they go first, then mentions, likes and comments,
// then the posts, then each owner's post-count tally.
func (r *Reaper) RunOnce(now time.Time) (int, error) {
	cutoff := now.Add(-r.retention)
	var purged int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		reapable, err := posts.FindReapable(cutoff)
		if err != nil {
			return fmt.Errorf("find reapable posts: %w", err)
		}
		if len(reapable) == 0 {
			return nil
		}

		postIDs := make([]uint, len(reapable))
		ownerPosts := make(map[uint][]uint)
		for i, p := range reapable {
			postIDs[i] = p.ID
			ownerPosts[p.UserID] = append(ownerPosts[p.UserID], p.ID)
		}

		comments := repositories.NewPostgresCommentRepository(tx)
		commentIDs, err := comments.GetCommentIDsByPostIDs(postIDs)
		if err != nil {
			return fmt.Errorf("load dependent comments: %w", err)
		}

		notifications := repositories.NewPostgresNotificationRepository(tx)
		if err := notifications.DeleteByRefs(models.RefTypePost, postIDs); err != nil {
			return fmt.Errorf("purge post notifications: %w", err)
		}
		if err := notifications.DeleteByRefs(models.RefTypeComment, commentIDs); err != nil {
			return fmt.Errorf("purge comment notifications: %w", err)
		}

		mentions := repositories.NewPostgresMentionRepository(tx)
		if err := mentions.DeleteByPostIDs(postIDs); err != nil {
			return fmt.Errorf("purge post mentions: %w", err)
		}
		if err := mentions.DeleteByCommentIDs(commentIDs); err != nil {
			return fmt.Errorf("purge comment mentions: %w", err)
		}

		likes := repositories.NewPostgresLikeRepository(tx)
		if err := likes.DeleteByPostIDs(postIDs); err != nil {
			return fmt.Errorf("purge post likes: %w", err)
		}
		if err := likes.DeleteByCommentIDs(commentIDs); err != nil {
			return fmt.Errorf("purge comment likes: %w", err)
		}

		if err := comments.DeleteByPostIDs(postIDs); err != nil {
			return fmt.Errorf("purge comments: %w", err)
		}

		// A concurrent purge past the same marker check may already have
		// removed part of this snapshot. Each owner's tally moves only by
		// the rows this transaction really deleted.
		for ownerID, ids := range ownerPosts {
			deleted, derr := posts.DeletePosts(ids)
			if derr != nil {
				return fmt.Errorf("purge posts for user %d: %w", ownerID, derr)
			}
			if deleted == 0 {
				continue
			}
			if err := adjustCounter(tx, &models.User{}, ownerID, counterPosts, -int(deleted)); err != nil {
				return fmt.Errorf("drop post count for user %d: %w", ownerID, err)
			}
			purged += int(deleted)
		}
		return nil
	})
	return purged, err
}
