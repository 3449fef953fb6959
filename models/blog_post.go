package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// BlogPost represents a published piece of content together with its engagement counters
type BlogPost struct {
	ID                  string                      `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Title               string                      `json:"title" gorm:"type:text;not null"`
	Content             string                      `json:"content" gorm:"type:text;not null"`
	Excerpt             string                      `json:"excerpt" gorm:"type:text;not null"`
	Author              string                      `json:"author" gorm:"type:text;not null;index"`
	AuthorID            *string                     `json:"authorId" gorm:"type:varchar(36);index"`
	ChainID             string                      `json:"chainId" gorm:"type:text;not null"`
	TransactionHash     *string                     `json:"transactionHash" gorm:"type:text"`
	CoverImage          *string                     `json:"coverImage" gorm:"type:text"`
	Tags                datatypes.JSONSlice[string] `json:"tags"`
	Category            *string                     `json:"category" gorm:"type:text;index"`
	ReadingTime         int                         `json:"readingTime" gorm:"type:integer;not null;default:1"`
	Likes               int                         `json:"likes" gorm:"type:integer;not null;default:0"`
	Views               int                         `json:"views" gorm:"type:integer;not null;default:0"`
	Comments            int                         `json:"comments" gorm:"type:integer;not null;default:0"`
	Shares              int                         `json:"shares" gorm:"type:integer;not null;default:0"`
	IsPinned            bool                        `json:"isPinned" gorm:"not null;default:false"`
	IsFeatured          bool                        `json:"isFeatured" gorm:"not null;default:false"`
	IsPublished         bool                        `json:"isPublished" gorm:"not null"`
	MonetizationEnabled bool                        `json:"monetizationEnabled" gorm:"not null;default:false"`
	TrendingScore       int                         `json:"trendingScore" gorm:"type:integer;not null;default:0"`
	AIGeneratedSummary  *string                     `json:"aiGeneratedSummary" gorm:"column:ai_generated_summary;type:text"`
	SEOTitle            *string                     `json:"seoTitle" gorm:"column:seo_title;type:text"`
	SEODescription      *string                     `json:"seoDescription" gorm:"column:seo_description;type:text"`
	CreatedAt           time.Time                   `json:"createdAt" gorm:"not null"`
	UpdatedAt           time.Time                   `json:"updatedAt" gorm:"not null"`
	PublishedAt         time.Time                   `json:"publishedAt" gorm:"not null"`
}

// Clone returns a deep copy so callers never share the tag slice or any
// optional field with the store
func (p BlogPost) Clone() BlogPost {
	p.Tags = slices.Clone(p.Tags)
	p.AuthorID = clonePtr(p.AuthorID)
	p.TransactionHash = clonePtr(p.TransactionHash)
	p.CoverImage = clonePtr(p.CoverImage)
	p.Category = clonePtr(p.Category)
	p.AIGeneratedSummary = clonePtr(p.AIGeneratedSummary)
	p.SEOTitle = clonePtr(p.SEOTitle)
	p.SEODescription = clonePtr(p.SEODescription)
	return p
}

// HasTag reports whether the post carries the exact tag
func (p BlogPost) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// InCategory reports whether the post belongs to the named category
func (p BlogPost) InCategory(category string) bool {
	return p.Category != nil && *p.Category == category
}

// Engagement is a set of signed deltas applied to the denormalized post counters
type Engagement struct {
	Likes    int
	Comments int
	Shares   int
}

// InsertBlogPost carries the caller supplied fields of a new post.
// Generated fields (id, counters, trending score, timestamps) are absent.
type InsertBlogPost struct {
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Excerpt             string   `json:"excerpt"`
	Author              string   `json:"author"`
	AuthorID            *string  `json:"authorId,omitempty"`
	ChainID             string   `json:"chainId"`
	TransactionHash     *string  `json:"transactionHash,omitempty"`
	CoverImage          *string  `json:"coverImage,omitempty"`
	Tags                []string `json:"tags"`
	Category            *string  `json:"category,omitempty"`
	ReadingTime         int      `json:"readingTime"`
	IsPinned            bool     `json:"isPinned"`
	IsFeatured          bool     `json:"isFeatured"`
	IsPublished         *bool    `json:"isPublished,omitempty"`
	MonetizationEnabled bool     `json:"monetizationEnabled"`
	AIGeneratedSummary  *string  `json:"aiGeneratedSummary,omitempty"`
	SEOTitle            *string  `json:"seoTitle,omitempty"`
	SEODescription      *string  `json:"seoDescription,omitempty"`
}

// Build turns the insert payload into a stored post with zeroed counters
func (in InsertBlogPost) Build(id string, now time.Time) BlogPost {
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	readingTime := in.ReadingTime
	if readingTime < 1 {
		readingTime = 1
	}
	tags := slices.Clone(in.Tags)
	if tags == nil {
		tags = []string{}
	}

	return BlogPost{
		ID:                  id,
		Title:               in.Title,
		Content:             in.Content,
		Excerpt:             in.Excerpt,
		Author:              in.Author,
		AuthorID:            in.AuthorID,
		ChainID:             in.ChainID,
		TransactionHash:     in.TransactionHash,
		CoverImage:          in.CoverImage,
		Tags:                tags,
		Category:            in.Category,
		ReadingTime:         readingTime,
		IsPinned:            in.IsPinned,
		IsFeatured:          in.IsFeatured,
		IsPublished:         published,
		MonetizationEnabled: in.MonetizationEnabled,
		AIGeneratedSummary:  in.AIGeneratedSummary,
		SEOTitle:            in.SEOTitle,
		SEODescription:      in.SEODescription,
		CreatedAt:           now,
		UpdatedAt:           now,
		PublishedAt:         now,
	}
}

// BlogPostPatch is a partial update. Nil fields are left untouched.
type BlogPostPatch struct {
	Title               *string   `json:"title,omitempty"`
	Content             *string   `json:"content,omitempty"`
	Excerpt             *string   `json:"excerpt,omitempty"`
	CoverImage          *string   `json:"coverImage,omitempty"`
	Tags                *[]string `json:"tags,omitempty"`
	Category            *string   `json:"category,omitempty"`
	ReadingTime         *int      `json:"readingTime,omitempty"`
	IsPinned            *bool     `json:"isPinned,omitempty"`
	IsFeatured          *bool     `json:"isFeatured,omitempty"`
	IsPublished         *bool     `json:"isPublished,omitempty"`
	MonetizationEnabled *bool     `json:"monetizationEnabled,omitempty"`
	TransactionHash     *string   `json:"transactionHash,omitempty"`
	AIGeneratedSummary  *string   `json:"aiGeneratedSummary,omitempty"`
	SEOTitle            *string   `json:"seoTitle,omitempty"`
	SEODescription      *string   `json:"seoDescription,omitempty"`
}

// Apply merges the patch into p and stamps UpdatedAt
func (patch BlogPostPatch) Apply(p *BlogPost, now time.Time) {
	setIf(&p.Title, patch.Title)
	setIf(&p.Content, patch.Content)
	setIf(&p.Excerpt, patch.Excerpt)
	setIf(&p.ReadingTime, patch.ReadingTime)
	setIf(&p.IsPinned, patch.IsPinned)
	setIf(&p.IsFeatured, patch.IsFeatured)
	setIf(&p.IsPublished, patch.IsPublished)
	setIf(&p.MonetizationEnabled, patch.MonetizationEnabled)
	setOptional(&p.CoverImage, patch.CoverImage)
	setOptional(&p.Category, patch.Category)
	setOptional(&p.TransactionHash, patch.TransactionHash)
	setOptional(&p.AIGeneratedSummary, patch.AIGeneratedSummary)
	setOptional(&p.SEOTitle, patch.SEOTitle)
	setOptional(&p.SEODescription, patch.SEODescription)
	if patch.Tags != nil {
		p.Tags = slices.Clone(*patch.Tags)
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	p.UpdatedAt = now
}

// Columns lists the database columns Apply writes
func (patch BlogPostPatch) Columns() []string {
	return patchColumns{"updated_at"}.
		add("title", patch.Title != nil).
		add("content", patch.Content != nil).
		add("excerpt", patch.Excerpt != nil).
		add("cover_image", patch.CoverImage != nil).
		add("tags", patch.Tags != nil).
		add("category", patch.Category != nil).
		add("reading_time", patch.ReadingTime != nil).
		add("is_pinned", patch.IsPinned != nil).
		add("is_featured", patch.IsFeatured != nil).
		add("is_published", patch.IsPublished != nil).
		add("monetization_enabled", patch.MonetizationEnabled != nil).
		add("transaction_hash", patch.TransactionHash != nil).
		add("ai_generated_summary", patch.AIGeneratedSummary != nil).
		add("seo_title", patch.SEOTitle != nil).
		add("seo_description", patch.SEODescription != nil)
}

type patchColumns []string

func (c patchColumns) add(column string, set bool) patchColumns {
	if set {
		return append(c, column)
	}
	return c
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func setOptional[T any](dst **T, v *T) {
	if v != nil {
		*dst = clonePtr(v)
	}
}
