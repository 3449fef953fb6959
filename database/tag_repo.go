package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type TagRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTagRepo(db *gorm.DB, now func() time.Time) *TagRepo {
	return &TagRepo{db: db, now: now}
}

func (r *TagRepo) byPopularity(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("post_count DESC").Order("id ASC")
}

func (r *TagRepo) All(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.byPopularity(ctx).Find(&tags).Error
	return tags, err
}

func (r *TagRepo) Trending(ctx context.Context, limit int) ([]models.Tag, error) {
	tx := r.byPopularity(ctx)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	tags := []models.Tag{}
	err := tx.Find(&tags).Error
	return tags, err
}

func (r *TagRepo) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	return firstOrNil[models.Tag](ctx, r.db, "id = ?", id)
}

func (r *TagRepo) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return firstOrNil[models.Tag](ctx, r.db, "slug = ?", slug)
}

func (r *TagRepo) Add(ctx context.Context, in models.InsertTag) (models.Tag, error) {
	tag := in.Build(uuid.NewString(), r.now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken[models.Tag](tx, tag.ID, tag.Name, tag.Slug)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return translateUnique(tx.Create(&tag).Error, ErrNameTaken)
	})
	if err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (r *TagRepo) Update(ctx context.Context, id string, patch models.TagPatch) (*models.Tag, error) {
	var updated *models.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := firstOrNil[models.Tag](ctx, tx, "id = ?", id)
		if err != nil || tag == nil {
			return err
		}
		patch.Apply(tag)
		taken, err := nameTaken[models.Tag](tx, id, tag.Name, tag.Slug)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		updated, err = updateColumns(ctx, tx, id, tag, patch.Columns())
		return translateUnique(err, ErrNameTaken)
	})
	return updated, err
}

func (r *TagRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Tag](ctx, r.db, id)
}

func (r *TagRepo) AdjustPostCount(ctx context.Context, name string, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("name = ?", name).
		UpdateColumn("post_count", clampExpr("post_count", delta)).Error
}
