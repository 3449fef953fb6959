package models

import "time"

// Like is a reaction to either a post or a comment
type Like struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	PostID        *string   `json:"postId" gorm:"type:varchar(36);index"`
	CommentID     *string   `json:"commentId" gorm:"type:varchar(36);index"`
	UserID        *string   `json:"userId" gorm:"type:varchar(36)"`
	WalletAddress string    `json:"walletAddress" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
}

func (l Like) Clone() Like {
	l.PostID = clonePtr(l.PostID)
	l.CommentID = clonePtr(l.CommentID)
	l.UserID = clonePtr(l.UserID)
	return l
}

type InsertLike struct {
	PostID        *string `json:"postId,omitempty"`
	CommentID     *string `json:"commentId,omitempty"`
	UserID        *string `json:"userId,omitempty"`
	WalletAddress string  `json:"walletAddress"`
}

func (in InsertLike) Build(id string, now time.Time) Like {
	return Like{
		ID:            id,
		PostID:        in.PostID,
		CommentID:     in.CommentID,
		UserID:        in.UserID,
		WalletAddress: in.WalletAddress,
		CreatedAt:     now,
	}
}

// Identity is the lookup used to detect an existing like for the same target and liker
func (in InsertLike) Identity() LikeQuery {
	return LikeQuery{
		PostID:        deref(in.PostID),
		CommentID:     deref(in.CommentID),
		UserID:        deref(in.UserID),
		WalletAddress: in.WalletAddress,
	}
}

// LikeQuery matches likes field by field. Empty fields are not checked.
type LikeQuery struct {
	PostID        string
	CommentID     string
	UserID        string
	WalletAddress string
}

func (q LikeQuery) Matches(l Like) bool {
	if q.PostID != "" && deref(l.PostID) != q.PostID {
		return false
	}
	if q.CommentID != "" && deref(l.CommentID) != q.CommentID {
		return false
	}
	if q.UserID != "" && deref(l.UserID) != q.UserID {
		return false
	}
	if q.WalletAddress != "" && l.WalletAddress != q.WalletAddress {
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
