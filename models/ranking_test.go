package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrendingScore(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		post BlogPost
		want int
	}{
		{
			name: "fresh post keeps full engagement",
			post: BlogPost{Likes: 10, Comments: 5, Shares: 2, Views: 1000, CreatedAt: now},
			want: 36,
		},
		{
			name: "half way through the window halves the score",
			post: BlogPost{Likes: 10, Comments: 5, Shares: 2, Views: 1000, CreatedAt: now.Add(-15 * 24 * time.Hour)},
			want: 18,
		},
		{
			name: "thirty days old decays to zero",
			post: BlogPost{Likes: 10, Comments: 5, Shares: 2, Views: 1000, CreatedAt: now.Add(-30 * 24 * time.Hour)},
			want: 0,
		},
		{
			name: "older than the window stays at zero",
			post: BlogPost{Likes: 500, CreatedAt: now.Add(-90 * 24 * time.Hour)},
			want: 0,
		},
		{
			name: "score is capped",
			post: BlogPost{Likes: 400, Shares: 100, CreatedAt: now},
			want: MaxTrendingScore,
		},
		{
			name: "views below one hundred round away",
			post: BlogPost{Views: 49, CreatedAt: now},
			want: 0,
		},
		{
			name: "zero creation time counts as now",
			post: BlogPost{Likes: 3},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendingScore(tt.post, now))
		})
	}
}

func TestRecommendationScore(t *testing.T) {
	p := BlogPost{TrendingScore: 40, Likes: 12, Views: 250}
	assert.InDelta(t, 54.5, RecommendationScore(p), 1e-9)
}

func TestEstimateReadingTime(t *testing.T) {
	assert.Equal(t, 1, EstimateReadingTime(""))
	assert.Equal(t, 1, EstimateReadingTime("a few words"))

	words := make([]byte, 0, 401*2)
	for i := 0; i < 401; i++ {
		words = append(words, 'w', ' ')
	}
	assert.Equal(t, 3, EstimateReadingTime(string(words)))
}
