package models

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MonthKey formats t as the "YYYY-MM" bucket used by the monthly analytics maps
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// UserAnalytics is the creator dashboard snapshot. Earnings are in wei.
type UserAnalytics struct {
	ID              string                      `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	UserID          string                      `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex"`
	TotalViews      int                         `json:"totalViews" gorm:"type:integer;not null;default:0"`
	TotalLikes      int                         `json:"totalLikes" gorm:"type:integer;not null;default:0"`
	TotalComments   int                         `json:"totalComments" gorm:"type:integer;not null;default:0"`
	TotalShares     int                         `json:"totalShares" gorm:"type:integer;not null;default:0"`
	TotalEarnings   decimal.Decimal             `json:"totalEarnings" gorm:"type:numeric(78,0);not null;default:0"`
	MonthlyViews    map[string]int              `json:"monthlyViews" gorm:"serializer:json"`
	MonthlyEarnings map[string]decimal.Decimal  `json:"monthlyEarnings" gorm:"serializer:json"`
	TopPosts        datatypes.JSONSlice[string] `json:"topPosts"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"not null"`
	UpdatedAt       time.Time                   `json:"updatedAt" gorm:"not null"`
}

func (a UserAnalytics) Clone() UserAnalytics {
	a.MonthlyViews = maps.Clone(a.MonthlyViews)
	a.MonthlyEarnings = maps.Clone(a.MonthlyEarnings)
	a.TopPosts = slices.Clone(a.TopPosts)
	return a
}

// AddEarnings credits amount to the total and to the month containing at
func (a *UserAnalytics) AddEarnings(amount decimal.Decimal, at time.Time) {
	a.TotalEarnings = a.TotalEarnings.Add(amount)
	if a.MonthlyEarnings == nil {
		a.MonthlyEarnings = make(map[string]decimal.Decimal)
	}
	key := MonthKey(at)
	a.MonthlyEarnings[key] = a.MonthlyEarnings[key].Add(amount)
}

// EarningsRecord is the payload of a simulated payout to a creator
type EarningsRecord struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}
