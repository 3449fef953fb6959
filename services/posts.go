package services

import (
	"context"
	"slices"

	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
)

// CreatedPost is a new post together with its simulated chain publications
type CreatedPost struct {
	models.BlogPost
	Publications []Publication `json:"publications"`
}

// CreatePost validates and stores a post, publishes it to chains (the post's own
// chain when none are given) and bumps the category, tag and author counters.
// A chain that fails to publish is reported in the result, not as an error.
func (b *Blog) CreatePost(ctx context.Context, in models.InsertBlogPost, chains []string) (CreatedPost, error) {
	if err := in.Validate(); err != nil {
		return CreatedPost{}, errs.FromValidation(err)
	}
	if in.ReadingTime == 0 {
		in.ReadingTime = models.EstimateReadingTime(in.Content)
	}
	if in.SEOTitle == nil {
		in.SEOTitle = &in.Title
	}
	if in.SEODescription == nil {
		in.SEODescription = &in.Excerpt
	}

	posts := b.db.BlogPostRepo()
	post, err := posts.Add(ctx, in)
	if err != nil {
		return CreatedPost{}, dbErr("create", "blog post", err)
	}

	if len(chains) == 0 {
		chains = []string{post.ChainID}
	}
	publications, _ := PublishEverywhere(ctx, post, chains)

	if post.TransactionHash == nil {
		for _, p := range publications {
			if p.ChainID != post.ChainID || !p.Succeeded() {
				continue
			}
			hash := p.TransactionHash
			updated, err := posts.Update(ctx, post.ID, models.BlogPostPatch{TransactionHash: &hash})
			if err != nil {
				return CreatedPost{}, dbErr("update", "blog post", err)
			}
			if updated != nil {
				post = *updated
			}
			break
		}
	}

	b.adjustTaxonomy(ctx, post.Category, post.Tags, 1)
	if post.AuthorID != nil {
		err := b.db.UserRepo().AdjustCounters(ctx, *post.AuthorID, models.UserCounters{TotalPosts: 1})
		b.counterFailed(err, "user.totalPosts", *post.AuthorID)
	}
	b.invalidate(ctx)

	b.logger.Info().Str("postId", post.ID).Int("chains", len(publications)).Msg("Blog post created")
	return CreatedPost{BlogPost: post, Publications: publications}, nil
}

// UpdatePost applies patch and moves the category and tag counters when those change
func (b *Blog) UpdatePost(ctx context.Context, id string, patch models.BlogPostPatch) (models.BlogPost, error) {
	if err := patch.Validate(); err != nil {
		return models.BlogPost{}, errs.FromValidation(err)
	}

	posts := b.db.BlogPostRepo()
	before, err := posts.FindByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, dbErr("get", "blog post", err)
	}
	if before == nil {
		return models.BlogPost{}, errs.NewNotFound("Blog post")
	}

	after, err := posts.Update(ctx, id, patch)
	if err != nil {
		return models.BlogPost{}, dbErr("update", "blog post", err)
	}
	if after == nil {
		return models.BlogPost{}, errs.NewNotFound("Blog post")
	}

	if !sameCategory(before.Category, after.Category) {
		b.adjustTaxonomy(ctx, before.Category, nil, -1)
		b.adjustTaxonomy(ctx, after.Category, nil, 1)
	}
	b.adjustTaxonomy(ctx, nil, difference(before.Tags, after.Tags), -1)
	b.adjustTaxonomy(ctx, nil, difference(after.Tags, before.Tags), 1)
	b.invalidate(ctx)

	return *after, nil
}

// DeletePost removes a post and reverses the counters its creation added
func (b *Blog) DeletePost(ctx context.Context, id string) error {
	posts := b.db.BlogPostRepo()
	post, err := posts.FindByID(ctx, id)
	if err != nil {
		return dbErr("get", "blog post", err)
	}
	if post == nil {
		return errs.NewNotFound("Blog post")
	}

	deleted, err := posts.Delete(ctx, id)
	if err != nil {
		return dbErr("delete", "blog post", err)
	}
	if !deleted {
		return errs.NewNotFound("Blog post")
	}

	b.adjustTaxonomy(ctx, post.Category, post.Tags, -1)
	if post.AuthorID != nil {
		err := b.db.UserRepo().AdjustCounters(ctx, *post.AuthorID, models.UserCounters{TotalPosts: -1})
		b.counterFailed(err, "user.totalPosts", *post.AuthorID)
	}
	b.invalidate(ctx)
	return nil
}

// ViewPost returns the post as it was before this view was counted
func (b *Blog) ViewPost(ctx context.Context, id string) (models.BlogPost, error) {
	posts := b.db.BlogPostRepo()
	post, err := posts.FindByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, dbErr("get", "blog post", err)
	}
	if post == nil {
		return models.BlogPost{}, errs.NewNotFound("Blog post")
	}
	if err := posts.IncrementViews(ctx, id); err != nil {
		return models.BlogPost{}, dbErr("update", "blog post views", err)
	}
	return *post, nil
}

func (b *Blog) SharePost(ctx context.Context, id string) (models.BlogPost, error) {
	posts := b.db.BlogPostRepo()
	post, err := posts.FindByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, dbErr("get", "blog post", err)
	}
	if post == nil {
		return models.BlogPost{}, errs.NewNotFound("Blog post")
	}
	if err := posts.AdjustEngagement(ctx, id, models.Engagement{Shares: 1}); err != nil {
		return models.BlogPost{}, dbErr("update", "blog post shares", err)
	}
	post.Shares++
	b.invalidate(ctx, cache.PrefixPosts)
	return *post, nil
}

func (b *Blog) TrendingPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := b.cache.Aside(ctx, cache.Key("posts", "trending", limit), &posts, func() (err error) {
		posts, err = b.db.BlogPostRepo().FindTrending(ctx, limit)
		return err
	})
	if err != nil {
		return nil, dbErr("get", "trending posts", err)
	}
	return posts, nil
}

func (b *Blog) FeaturedPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := b.cache.Aside(ctx, cache.Key("posts", "featured", limit), &posts, func() (err error) {
		posts, err = b.db.BlogPostRepo().FindFeatured(ctx, limit)
		return err
	})
	if err != nil {
		return nil, dbErr("get", "featured posts", err)
	}
	return posts, nil
}

func (b *Blog) Recommendations(ctx context.Context, userID string, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := b.cache.Aside(ctx, cache.Key("posts", "recommend", userID, limit), &posts, func() (err error) {
		posts, err = b.db.BlogPostRepo().Recommend(ctx, userID, limit)
		return err
	})
	if err != nil {
		return nil, dbErr("get", "recommendations", err)
	}
	return posts, nil
}

// adjustTaxonomy moves the post counters of the named category and tags by delta.
// Names without a matching category or tag are ignored.
func (b *Blog) adjustTaxonomy(ctx context.Context, category *string, tags []string, delta int) {
	if category != nil && *category != "" {
		err := b.db.CategoryRepo().AdjustPostCount(ctx, *category, delta)
		b.counterFailed(err, "category.postCount", *category)
	}
	for _, tag := range difference(tags, nil) {
		err := b.db.TagRepo().AdjustPostCount(ctx, tag, delta)
		b.counterFailed(err, "tag.postCount", tag)
	}
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// difference returns the tags of a that are not in b
func difference(a, b []string) []string {
	var out []string
	for _, tag := range a {
		if !slices.Contains(b, tag) && !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}
