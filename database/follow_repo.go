package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type FollowRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFollowRepo(db *gorm.DB, now func() time.Time) *FollowRepo {
	return &FollowRepo{db: db, now: now}
}

func (r *FollowRepo) FindByID(ctx context.Context, id string) (*models.Follow, error) {
	return firstOrNil[models.Follow](ctx, r.db, "id = ?", id)
}

func (r *FollowRepo) Find(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	return firstOrNil[models.Follow](ctx, r.db, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *FollowRepo) list(ctx context.Context, column, userID string) ([]models.Follow, error) {
	follows := []models.Follow{}
	err := r.db.WithContext(ctx).
		Where(column+" = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&follows).Error
	return follows, err
}

func (r *FollowRepo) Followers(ctx context.Context, userID string) ([]models.Follow, error) {
	return r.list(ctx, "following_id", userID)
}

func (r *FollowRepo) Following(ctx context.Context, userID string) ([]models.Follow, error) {
	return r.list(ctx, "follower_id", userID)
}

func (r *FollowRepo) FindOrAdd(ctx context.Context, in models.InsertFollow) (models.Follow, bool, error) {
	var (
		follow  models.Follow
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := firstOrNil[models.Follow](ctx, tx, "follower_id = ? AND following_id = ?", in.FollowerID, in.FollowingID)
		if err != nil {
			return err
		}
		if existing != nil {
			follow = *existing
			return nil
		}
		follow = in.Build(uuid.NewString(), r.now())
		created = true
		return tx.Create(&follow).Error
	})
	if err != nil {
		return models.Follow{}, false, err
	}
	return follow, created, nil
}

func (r *FollowRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Follow](ctx, r.db, id)
}
