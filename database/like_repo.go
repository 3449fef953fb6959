package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type LikeRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLikeRepo(db *gorm.DB, now func() time.Time) *LikeRepo {
	return &LikeRepo{db: db, now: now}
}

func likeWhere(tx *gorm.DB, q models.LikeQuery) *gorm.DB {
	if q.PostID != "" {
		tx = tx.Where("post_id = ?", q.PostID)
	}
	if q.CommentID != "" {
		tx = tx.Where("comment_id = ?", q.CommentID)
	}
	if q.UserID != "" {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.WalletAddress != "" {
		tx = tx.Where("wallet_address = ?", q.WalletAddress)
	}
	return tx
}

func (r *LikeRepo) findLike(tx *gorm.DB, q models.LikeQuery) (*models.Like, error) {
	var likes []models.Like
	if err := likeWhere(tx, q).Order("created_at ASC").Order("id ASC").Limit(1).Find(&likes).Error; err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, nil
	}
	return &likes[0], nil
}

func (r *LikeRepo) FindLike(ctx context.Context, q models.LikeQuery) (*models.Like, error) {
	return r.findLike(r.db.WithContext(ctx), q)
}

func (r *LikeRepo) FindByID(ctx context.Context, id string) (*models.Like, error) {
	return firstOrNil[models.Like](ctx, r.db, "id = ?", id)
}

func (r *LikeRepo) FindByPost(ctx context.Context, postID string) ([]models.Like, error) {
	likes := []models.Like{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&likes).Error
	return likes, err
}

func (r *LikeRepo) Add(ctx context.Context, in models.InsertLike) (models.Like, error) {
	like := in.Build(uuid.NewString(), r.now())
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return models.Like{}, err
	}
	return like, nil
}

// FindOrAdd runs the lookup and the insert in one transaction. Under
// PostgreSQL read committed two racing transactions can still both insert.
func (r *LikeRepo) FindOrAdd(ctx context.Context, in models.InsertLike) (models.Like, bool, error) {
	var (
		like    models.Like
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.findLike(tx, in.Identity())
		if err != nil {
			return err
		}
		if existing != nil {
			like = *existing
			return nil
		}
		like = in.Build(uuid.NewString(), r.now())
		created = true
		return tx.Create(&like).Error
	})
	if err != nil {
		return models.Like{}, false, err
	}
	return like, created, nil
}

func (r *LikeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Like](ctx, r.db, id)
}
