package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type UserAnalyticsRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserAnalyticsRepo(db *gorm.DB, now func() time.Time) *UserAnalyticsRepo {
	return &UserAnalyticsRepo{db: db, now: now}
}

func (r *UserAnalyticsRepo) FindByUserID(ctx context.Context, userID string) (*models.UserAnalytics, error) {
	return firstOrNil[models.UserAnalytics](ctx, r.db, "user_id = ?", userID)
}

// modify loads the user's snapshot, creating it when missing, and saves whatever fn changes
func (r *UserAnalyticsRepo) modify(ctx context.Context, userID string, fn func(*models.UserAnalytics)) (models.UserAnalytics, error) {
	var out models.UserAnalytics
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.now()
		current, err := firstOrNil[models.UserAnalytics](ctx, tx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		isNew := current == nil
		if isNew {
			current = &models.UserAnalytics{
				ID:              uuid.NewString(),
				UserID:          userID,
				TotalEarnings:   decimal.Zero,
				MonthlyViews:    map[string]int{},
				MonthlyEarnings: map[string]decimal.Decimal{},
				TopPosts:        []string{},
				CreatedAt:       now,
			}
		}
		fn(current)
		current.UpdatedAt = now

		save := tx.Save
		if isNew {
			save = tx.Create
		}
		if err := save(current).Error; err != nil {
			return err
		}
		out = *current
		return nil
	})
	return out, err
}

func (r *UserAnalyticsRepo) Upsert(ctx context.Context, snapshot models.UserAnalytics) (models.UserAnalytics, error) {
	return r.modify(ctx, snapshot.UserID, func(a *models.UserAnalytics) {
		a.TotalViews = snapshot.TotalViews
		a.TotalLikes = snapshot.TotalLikes
		a.TotalComments = snapshot.TotalComments
		a.TotalShares = snapshot.TotalShares
		a.MonthlyViews = snapshot.MonthlyViews
		a.TopPosts = snapshot.TopPosts
	})
}

func (r *UserAnalyticsRepo) RecordEarnings(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (models.UserAnalytics, error) {
	return r.modify(ctx, userID, func(a *models.UserAnalytics) {
		a.AddEarnings(amount, at)
	})
}
