package repositories

import (
	"errors"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkerRepository persists last-run markers for background jobs
type MarkerRepository interface {
	GetLastRun(name string) (time.Time, bool, error)
	SetLastRun(name string, at time.Time) error
}

type postgresMarkerRepository struct {
	db *gorm.DB
}

// NewPostgresMarkerRepository creates a new Postgres-backed MarkerRepository
func NewPostgresMarkerRepository(db *gorm.DB) MarkerRepository {
	return &postgresMarkerRepository{db: db}
}

// GetLastRun returns the last recorded run time for a job. The boolean is
// false when no marker exists yet.
func (r *postgresMarkerRepository) GetLastRun(name string) (time.Time, bool, error) {
	var marker models.JobMarker
	if err := r.db.Where("name = ?", name).First(&marker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return marker.LastRunAt, true, nil
}

// SetLastRun upserts the marker row for a job
func (r *postgresMarkerRepository) SetLastRun(name string, at time.Time) error {
	marker := models.JobMarker{Name: name, LastRunAt: at}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_run_at"}),
	}).Create(&marker).Error
}
