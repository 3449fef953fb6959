package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

type CategoryRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCategoryRepo(db *gorm.DB, now func() time.Time) *CategoryRepo {
	return &CategoryRepo{db: db, now: now}
}

func (r *CategoryRepo) All(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	return firstOrNil[models.Category](ctx, r.db, "id = ?", id)
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return firstOrNil[models.Category](ctx, r.db, "slug = ?", slug)
}

func nameTaken[T any](tx *gorm.DB, id, name, slug string) (bool, error) {
	var count int64
	err := tx.Model(new(T)).
		Where("id <> ?", id).
		Where(tx.Session(&gorm.Session{NewDB: true}).Where("name = ?", name).Or("slug = ?", slug)).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepo) Add(ctx context.Context, in models.InsertCategory) (models.Category, error) {
	category := in.Build(uuid.NewString(), r.now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken[models.Category](tx, category.ID, category.Name, category.Slug)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return translateUnique(tx.Create(&category).Error, ErrNameTaken)
	})
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var updated *models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := firstOrNil[models.Category](ctx, tx, "id = ?", id)
		if err != nil || category == nil {
			return err
		}
		patch.Apply(category)
		taken, err := nameTaken[models.Category](tx, id, category.Name, category.Slug)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		updated, err = updateColumns(ctx, tx, id, category, patch.Columns())
		return translateUnique(err, ErrNameTaken)
	})
	return updated, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.Category](ctx, r.db, id)
}

func (r *CategoryRepo) AdjustPostCount(ctx context.Context, name string, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ?", name).
		UpdateColumn("post_count", clampExpr("post_count", delta)).Error
}
