package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type UserRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepo(db *gorm.DB, now func() time.Time) *UserRepo {
	return &UserRepo{db: db, now: now}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return firstOrNil[models.User](ctx, r.db, "id = ?", id)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return firstOrNil[models.User](ctx, r.db, "username = ?", username)
}

func (r *UserRepo) FindByWallet(ctx context.Context, wallet string) (*models.User, error) {
	return firstOrNil[models.User](ctx, r.db, "LOWER(wallet_address) = LOWER(?)", wallet)
}

func (r *UserRepo) Add(ctx context.Context, in models.InsertUser) (models.User, error) {
	user := in.Build(uuid.NewString(), r.now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return translateUnique(tx.Create(&user).Error, ErrUsernameTaken)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var updated *models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := firstOrNil[models.User](ctx, tx, "id = ?", id)
		if err != nil || user == nil {
			return err
		}
		patch.Apply(user, r.now())
		updated, err = updateColumns(ctx, tx, id, user, patch.Columns())
		return err
	})
	return updated, err
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.User](ctx, r.db, id)
}

func (r *UserRepo) AdjustCounters(ctx context.Context, id string, delta models.UserCounters) error {
	if delta.IsZero() {
		return nil
	}
	columns := map[string]interface{}{}
	for column, d := range map[string]int{
		"total_posts": delta.TotalPosts,
		"total_likes": delta.TotalLikes,
		"followers":   delta.Followers,
		"following":   delta.Following,
	} {
		if d != 0 {
			columns[column] = clampExpr(column, d)
		}
	}
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumns(columns).Error
}
