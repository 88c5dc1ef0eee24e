package submissionlog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultListLimit = 50

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&Entry{})
}

// Record appends e, filling SubmissionID when it is unset.
func (r *GormRepo) Record(ctx context.Context, e *Entry) error {
	if e == nil {
		return errors.New("submissionlog: nil entry")
	}
	if e.SubmissionID == uuid.Nil {
		e.SubmissionID = uuid.New()
	}
	return r.DB.WithContext(ctx).Create(e).Error
}

// ListByOrder returns the newest submissions of one order first.
func (r *GormRepo) ListByOrder(ctx context.Context, orderID, limit int) ([]Entry, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	var out []Entry
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
