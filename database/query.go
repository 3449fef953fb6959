package database

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rpupo63/chainblog-backend/models"
)

// PostQuery is the filter set of FindAll. Filters combine with AND. Limit 0 returns everything after Offset.
type PostQuery struct {
	Category string
	Tags     []string
	Author   string
	Featured bool
	Trending bool
	Limit    int
	Offset   int
}

// Matches applies every filter except pagination
func (q PostQuery) Matches(p models.BlogPost) bool {
	if q.Category != "" && !p.InCategory(q.Category) {
		return false
	}
	if len(q.Tags) > 0 && !slices.ContainsFunc(q.Tags, p.HasTag) {
		return false
	}
	if q.Author != "" && p.Author != q.Author {
		return false
	}
	if q.Featured && !p.IsFeatured {
		return false
	}
	if q.Trending && p.TrendingScore <= models.TrendingThreshold {
		return false
	}
	return true
}

func newestFirst(a, b models.BlogPost) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func highestTrendingFirst(a, b models.BlogPost) int {
	if c := cmp.Compare(b.TrendingScore, a.TrendingScore); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func highestRecommendationFirst(a, b models.BlogPost) int {
	if c := cmp.Compare(models.RecommendationScore(b), models.RecommendationScore(a)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func sortPosts(posts []models.BlogPost, byTrending bool) {
	if byTrending {
		slices.SortFunc(posts, highestTrendingFirst)
		return
	}
	slices.SortFunc(posts, newestFirst)
}

// paginate returns items[offset:offset+limit] clamped to the slice bounds
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// matchesSearch expects needle to be lower case already
func matchesSearch(p models.BlogPost, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle) {
		return true
	}
	return slices.ContainsFunc(p.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}

func byCreator(userID, wallet string) func(models.BlogPost) bool {
	return func(p models.BlogPost) bool {
		if userID != "" && p.AuthorID != nil && *p.AuthorID == userID {
			return true
		}
		return wallet != "" && strings.EqualFold(p.Author, wallet)
	}
}

func categoriesByName(a, b models.Category) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func tagsByPostCount(a, b models.Tag) int {
	if c := cmp.Compare(b.PostCount, a.PostCount); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func commentsNewestFirst(a, b models.Comment) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func likesOldestFirst(a, b models.Like) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func followsOldestFirst(a, b models.Follow) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// clampAdd adds delta to v without going below zero
func clampAdd(v, delta int) int {
	return max(0, v+delta)
}
