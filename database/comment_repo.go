package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type CommentRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCommentRepo(db *gorm.DB, now func() time.Time) *CommentRepo {
	return &CommentRepo{db: db, now: now}
}

func (r *CommentRepo) FindByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepo) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	return firstOrNil[models.Comment](ctx, r.db, "id = ?", id)
}

func (r *CommentRepo) Add(ctx context.Context, in models.InsertComment) (models.Comment, error) {
	comment := in.Build(uuid.NewString(), r.now())
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepo) Update(ctx context.Context, id string, patch models.CommentPatch) (*models.Comment, error) {
	var updated *models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := firstOrNil[models.Comment](ctx, tx, "id = ?", id)
		if err != nil || comment == nil {
			return err
		}
		patch.Apply(comment, r.now())
		updated, err = updateColumns(ctx, tx, id, comment, patch.Columns())
		return err
	})
	return updated, err
}

func (r *CommentRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Comment](ctx, r.db, id)
}

func (r *CommentRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("likes", clampExpr("likes", delta)).Error
}
