package services

import (
	"context"

	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
)

// CreateCategory stores a category, deriving the slug from the name when absent
func (b *Blog) CreateCategory(ctx context.Context, in models.InsertCategory) (models.Category, error) {
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	if err := in.Validate(); err != nil {
		return models.Category{}, errs.FromValidation(err)
	}
	category, err := b.db.CategoryRepo().Add(ctx, in)
	if err != nil {
		return models.Category{}, dbErr("create", "category", err)
	}
	b.invalidate(ctx, cache.PrefixCategories)
	return category, nil
}

func (b *Blog) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	if err := patch.Validate(); err != nil {
		return models.Category{}, errs.FromValidation(err)
	}
	category, err := b.db.CategoryRepo().Update(ctx, id, patch)
	if err != nil {
		return models.Category{}, dbErr("update", "category", err)
	}
	if category == nil {
		return models.Category{}, errs.NewNotFound("Category")
	}
	b.invalidate(ctx, cache.PrefixCategories)
	return *category, nil
}

func (b *Blog) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := b.cache.Aside(ctx, cache.PrefixCategories, &categories, func() (err error) {
		categories, err = b.db.CategoryRepo().All(ctx)
		return err
	})
	if err != nil {
		return nil, dbErr("get", "categories", err)
	}
	return categories, nil
}

// CreateTag stores a tag, deriving the slug from the name when absent
func (b *Blog) CreateTag(ctx context.Context, in models.InsertTag) (models.Tag, error) {
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	if err := in.Validate(); err != nil {
		return models.Tag{}, errs.FromValidation(err)
	}
	tag, err := b.db.TagRepo().Add(ctx, in)
	if err != nil {
		return models.Tag{}, dbErr("create", "tag", err)
	}
	b.invalidate(ctx, cache.PrefixTags)
	return tag, nil
}

func (b *Blog) UpdateTag(ctx context.Context, id string, patch models.TagPatch) (models.Tag, error) {
	if err := patch.Validate(); err != nil {
		return models.Tag{}, errs.FromValidation(err)
	}
	tag, err := b.db.TagRepo().Update(ctx, id, patch)
	if err != nil {
		return models.Tag{}, dbErr("update", "tag", err)
	}
	if tag == nil {
		return models.Tag{}, errs.NewNotFound("Tag")
	}
	b.invalidate(ctx, cache.PrefixTags)
	return *tag, nil
}

func (b *Blog) TrendingTags(ctx context.Context, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := b.cache.Aside(ctx, cache.Key("tags", "trending", limit), &tags, func() (err error) {
		tags, err = b.db.TagRepo().Trending(ctx, limit)
		return err
	})
	if err != nil {
		return nil, dbErr("get", "trending tags", err)
	}
	return tags, nil
}
