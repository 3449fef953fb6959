package models

import "time"

// Follow records that FollowerID follows FollowingID
type Follow struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	FollowerID  string    `json:"followerId" gorm:"type:varchar(36);not null;index"`
	FollowingID string    `json:"followingId" gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

type InsertFollow struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}

func (in InsertFollow) Build(id string, now time.Time) Follow {
	return Follow{
		ID:          id,
		FollowerID:  in.FollowerID,
		FollowingID: in.FollowingID,
		CreatedAt:   now,
	}
}
