package engine

import (
	"gorm.io/gorm"
)

// Counter columns maintained co-transactionally with their owning mutation
const (
	counterLikes     = "like_count"
	counterComments  = "comment_count"
	counterPosts     = "post_count"
	counterFollowers = "follower_count"
	counterFollowing = "following_count"
)

// adjustCounter bumps a denormalized counter as a single atomic UPDATE
// (SET col = col + delta), never read-modify-write, so concurrent toggles on
// the same row cannot lose updates. There is no floor clamp: a negative
// counter is a bug signal and must surface rather than be masked. A missing
// row is reported as ErrNotFound so the enclosing transaction rolls back.
func adjustCounter(tx *gorm.DB, model interface{}, id uint, column string, delta int) error {
	res := tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
