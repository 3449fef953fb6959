package models

import "time"

// Comment is a reply to a post, optionally threaded under another comment
type Comment struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	PostID        string    `json:"postId" gorm:"type:varchar(36);not null;index"`
	AuthorID      *string   `json:"authorId" gorm:"type:varchar(36)"`
	AuthorWallet  string    `json:"authorWallet" gorm:"type:text;not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ParentID      *string   `json:"parentId" gorm:"type:varchar(36)"`
	Likes         int       `json:"likes" gorm:"type:integer;not null;default:0"`
	IsHighlighted bool      `json:"isHighlighted" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"not null"`
}

func (c Comment) Clone() Comment {
	c.AuthorID = clonePtr(c.AuthorID)
	c.ParentID = clonePtr(c.ParentID)
	return c
}

type InsertComment struct {
	PostID       string  `json:"postId"`
	AuthorID     *string `json:"authorId,omitempty"`
	AuthorWallet string  `json:"authorWallet"`
	Content      string  `json:"content"`
	ParentID     *string `json:"parentId,omitempty"`
}

func (in InsertComment) Build(id string, now time.Time) Comment {
	return Comment{
		ID:           id,
		PostID:       in.PostID,
		AuthorID:     in.AuthorID,
		AuthorWallet: in.AuthorWallet,
		Content:      in.Content,
		ParentID:     in.ParentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

type CommentPatch struct {
	Content       *string `json:"content,omitempty"`
	IsHighlighted *bool   `json:"isHighlighted,omitempty"`
}

func (patch CommentPatch) Columns() []string {
	return patchColumns{"updated_at"}.
		add("content", patch.Content != nil).
		add("is_highlighted", patch.IsHighlighted != nil)
}

func (patch CommentPatch) Apply(c *Comment, now time.Time) {
	setIf(&c.Content, patch.Content)
	setIf(&c.IsHighlighted, patch.IsHighlighted)
	c.UpdatedAt = now
}
