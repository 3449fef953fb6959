package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/metrics"
	"github.com/rpupo63/chainblog-backend/models"
)

const topPostsLimit = 5

// Sweep triggers, used as metric labels
const (
	TriggerAdmin     = "admin"
	TriggerScheduler = "scheduler"
)

// RefreshTrending recomputes every post's trending score and drops cached lists
func (b *Blog) RefreshTrending(ctx context.Context, trigger string) (swept int, err error) {
	start := time.Now()
	defer func() { metrics.ObserveSweep(trigger, start, swept, err) }()

	swept, err = b.db.BlogPostRepo().UpdateTrendingScores(ctx)
	if err != nil {
		return 0, dbErr("update", "trending scores", err)
	}
	b.invalidate(ctx)

	b.logger.Info().
		Str("trigger", trigger).
		Int("posts", swept).
		Dur("duration", time.Since(start)).
		Msg("Trending scores updated")
	return swept, nil
}

// CreatorAnalytics recomputes the dashboard snapshot of userID from the posts
// they authored (by author id or by their wallet) and stores it
func (b *Blog) CreatorAnalytics(ctx context.Context, userID string) (models.UserAnalytics, error) {
	user, err := b.requireUser(ctx, userID)
	if err != nil {
		return models.UserAnalytics{}, err
	}
	wallet := ""
	if user.WalletAddress != nil {
		wallet = *user.WalletAddress
	}

	posts, err := b.db.BlogPostRepo().FindByCreator(ctx, userID, wallet)
	if err != nil {
		return models.UserAnalytics{}, dbErr("get", "creator posts", err)
	}

	snapshot, err := b.db.UserAnalyticsRepo().Upsert(ctx, summarize(userID, posts))
	if err != nil {
		return models.UserAnalytics{}, dbErr("update", "user analytics", err)
	}
	return snapshot, nil
}

// RecordEarnings credits a simulated payout in wei to a creator
func (b *Blog) RecordEarnings(ctx context.Context, record models.EarningsRecord) (models.UserAnalytics, error) {
	if err := record.Validate(); err != nil {
		return models.UserAnalytics{}, errs.FromValidation(err)
	}
	if _, err := b.requireUser(ctx, record.UserID); err != nil {
		return models.UserAnalytics{}, err
	}
	snapshot, err := b.db.UserAnalyticsRepo().RecordEarnings(ctx, record.UserID, record.Amount, b.now())
	if err != nil {
		return models.UserAnalytics{}, dbErr("update", "user analytics", err)
	}
	b.logger.Info().
		Str("userId", record.UserID).
		Str("amountWei", record.Amount.String()).
		Msg("Earnings recorded")
	return snapshot, nil
}

func summarize(userID string, posts []models.BlogPost) models.UserAnalytics {
	snapshot := models.UserAnalytics{
		UserID:       userID,
		MonthlyViews: make(map[string]int),
		TopPosts:     []string{},
	}
	for _, p := range posts {
		snapshot.TotalViews += p.Views
		snapshot.TotalLikes += p.Likes
		snapshot.TotalComments += p.Comments
		snapshot.TotalShares += p.Shares
		snapshot.MonthlyViews[models.MonthKey(p.CreatedAt)] += p.Views
	}

	ranked := slices.Clone(posts)
	slices.SortFunc(ranked, func(a, b models.BlogPost) int {
		if c := cmp.Compare(b.Views, a.Views); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for _, p := range ranked[:min(topPostsLimit, len(ranked))] {
		snapshot.TopPosts = append(snapshot.TopPosts, p.ID)
	}
	return snapshot
}
