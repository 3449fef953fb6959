package models

import (
	"math"
	"strings"
	"time"
)

const (
	TrendingThreshold = 50
	MaxTrendingScore  = 100
	trendingWindow    = 30.0
	wordsPerMinute    = 200
)

// TrendingScore rates recent engagement on a 0..100 scale. The score decays
// linearly to zero over thirty days.
func TrendingScore(p BlogPost, now time.Time) int {
	created := p.CreatedAt
	if created.IsZero() {
		created = now
	}
	ageInDays := now.Sub(created).Hours() / 24
	engagement := float64(p.Likes + 2*p.Comments + 3*p.Shares)
	viewScore := float64(p.Views) / 100
	ageFactor := math.Max(0, 1-ageInDays/trendingWindow)

	score := int(math.Round((engagement + viewScore) * ageFactor))
	return max(0, min(MaxTrendingScore, score))
}

// RecommendationScore ranks published posts for the recommendation feed
func RecommendationScore(p BlogPost) float64 {
	return float64(p.TrendingScore) + float64(p.Likes) + float64(p.Views)/100
}

// EstimateReadingTime returns the minutes needed to read content, at least one
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}
