package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"gorm.io/gorm"
)

// RateBucketRepository is a shared fixed-window counter store. Unlike the
// in-memory limiter it holds under horizontally scaled instances, since all
// of them increment the same row.
type RateBucketRepository struct {
	db *gorm.DB
}

// NewRateBucketRepository creates a new RateBucketRepository.
func NewRateBucketRepository(db *gorm.DB) *RateBucketRepository {
	return &RateBucketRepository{db: db}
}

// Incr increments the counter for key within the current fixed window and
// returns the resulting count. A bucket whose window has elapsed is reset
// rather than incremented.
func (r *RateBucketRepository) Incr(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bucket domain.RateBucket
		err := tx.First(&bucket, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			bucket = domain.RateBucket{Key: key, WindowStart: now, Count: 1}
			if err := tx.Create(&bucket).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if now.Sub(bucket.WindowStart) >= window {
				bucket.WindowStart = now
				bucket.Count = 1
			} else {
				bucket.Count++
			}
			if err := tx.Save(&bucket).Error; err != nil {
				return err
			}
		}
		count = bucket.Count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Decr undoes the most recent increment for key. Used when a request is
// rejected so refused attempts do not consume the budget.
func (r *RateBucketRepository) Decr(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Model(&domain.RateBucket{}).
		Where("key = ? AND count > 0", key).
		UpdateColumn("count", gorm.Expr("count - 1")).Error
}
