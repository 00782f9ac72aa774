package models

import "time"

// JobMarker is a durable last-run marker for background jobs such as the
// reaper. One row per job name.
type JobMarker struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:40;not null"`
	LastRunAt time.Time `json:"last_run_at"`
}
