package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

// SampleData is the demo content loaded into an empty store
type SampleData struct {
	Categories []models.Category
	Tags       []models.Tag
	Posts      []models.BlogPost
}

type sampleWriter interface {
	isEmpty(ctx context.Context) (bool, error)
	write(ctx context.Context, data SampleData) error
}

// Seed loads the sample content unless the store already has categories.
// It reports whether anything was written.
func (d Database) Seed(ctx context.Context, now time.Time) (bool, error) {
	empty, err := d.sample.isEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}
	if err := d.sample.write(ctx, NewSampleData(now)); err != nil {
		return false, fmt.Errorf("error seeding sample data: %w", err)
	}
	return true, nil
}

func strPtr(s string) *string { return &s }

func NewSampleData(now time.Time) SampleData {
	daysAgo := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	categories := []models.Category{
		{Name: "DeFi", Slug: "defi", Description: strPtr("Decentralized Finance protocols and innovations"), Color: "#3B82F6", Icon: strPtr("💎")},
		{Name: "NFTs", Slug: "nft", Description: strPtr("Non-Fungible Tokens and digital art"), Color: "#8B5CF6", Icon: strPtr("🎨")},
		{Name: "Web3", Slug: "web3", Description: strPtr("Decentralized web technologies"), Color: "#10B981", Icon: strPtr("🌐")},
	}
	tags := []models.Tag{
		{Name: "ethereum", Slug: "ethereum", Description: strPtr("Ethereum blockchain"), Color: "#627EEA"},
		{Name: "defi", Slug: "defi", Description: strPtr("Decentralized Finance"), Color: "#FF6B6B"},
		{Name: "nft", Slug: "nft", Description: strPtr("Non-Fungible Tokens"), Color: "#4ECDC4"},
		{Name: "web3", Slug: "web3", Description: strPtr("Web3 Technologies"), Color: "#45B7D1"},
	}

	posts := []models.BlogPost{
		{
			Title:               "The Future of Decentralized Content Publishing",
			Content:             "Exploring how blockchain technology is revolutionizing content creation and ownership in the digital age. This comprehensive analysis covers the technical foundations, economic implications, and social impact of decentralized publishing platforms. We dive deep into smart contracts, tokenomics, and the creator economy.",
			Excerpt:             "Exploring how blockchain technology is revolutionizing content creation and ownership in the digital age...",
			Author:              "0xAbcd1234567890abcdef1234567890abcdefEF12",
			ChainID:             "1",
			TransactionHash:     strPtr("0x1234567890abcdef1234567890abcdef12345678"),
			Tags:                []string{"ethereum", "defi", "web3"},
			Category:            strPtr("DeFi"),
			ReadingTime:         8,
			Likes:               234,
			Views:               1524,
			Comments:            45,
			Shares:              23,
			IsFeatured:          true,
			MonetizationEnabled: true,
			TrendingScore:       95,
			AIGeneratedSummary:  strPtr("This article explores the revolutionary impact of blockchain technology on content creation, covering technical foundations, economic models, and social implications of decentralized publishing."),
			CreatedAt:           daysAgo(2),
		},
		{
			Title:              "Getting Started with Web3 Blogging",
			Content:            "A comprehensive guide to publishing your first blog post on the blockchain using ChainBlog. Learn about wallet setup, network selection, gas optimization, and content strategies for decentralized publishing. This tutorial covers everything from technical setup to content strategy.",
			Excerpt:            "A comprehensive guide to publishing your first blog post on the blockchain using ChainBlog...",
			Author:             "0x1234567890abcdef1234567890abcdef12345678",
			ChainID:            "8453",
			TransactionHash:    strPtr("0xabcdef1234567890abcdef1234567890abcdef12"),
			Tags:               []string{"web3", "tutorial"},
			Category:           strPtr("Web3"),
			ReadingTime:        6,
			Likes:              156,
			Views:              892,
			Comments:           28,
			Shares:             15,
			TrendingScore:      78,
			AIGeneratedSummary: strPtr("A complete beginner's guide to Web3 blogging, covering wallet setup, network selection, and publishing strategies on decentralized platforms."),
			CreatedAt:          daysAgo(5),
		},
		{
			Title:               "Why Creators Love Blockchain Technology",
			Content:             "Discover how content creators are leveraging blockchain technology to monetize their work and maintain creative control. This post explores various monetization strategies, community building techniques, and the economics of creator-owned content. From NFTs to token gating, we cover it all.",
			Excerpt:             "Discover how content creators are leveraging blockchain technology to monetize their work...",
			Author:              "0x9ABCdef0123456789ABCdef0123456789ABCdef0",
			ChainID:             "56",
			TransactionHash:     strPtr("0xdef1234567890abcdef1234567890abcdef123456"),
			Tags:                []string{"nft", "creator-economy"},
			Category:            strPtr("NFTs"),
			ReadingTime:         10,
			Likes:               89,
			Views:               456,
			Comments:            12,
			Shares:              8,
			IsPinned:            true,
			MonetizationEnabled: true,
			TrendingScore:       65,
			AIGeneratedSummary:  strPtr("An exploration of how blockchain empowers content creators with new monetization models and creative control mechanisms."),
			CreatedAt:           daysAgo(7),
		},
	}

	for i := range categories {
		categories[i].ID = uuid.NewString()
		categories[i].CreatedAt = now
	}
	for i := range tags {
		tags[i].ID = uuid.NewString()
		tags[i].CreatedAt = now
	}
	for i := range posts {
		p := &posts[i]
		p.ID = uuid.NewString()
		p.IsPublished = true
		p.UpdatedAt = p.CreatedAt
		p.PublishedAt = p.CreatedAt

		for j := range categories {
			if p.InCategory(categories[j].Name) {
				categories[j].PostCount++
			}
		}
		for j := range tags {
			if p.HasTag(tags[j].Name) {
				tags[j].PostCount++
			}
		}
	}

	return SampleData{Categories: categories, Tags: tags, Posts: posts}
}

type memSampleWriter struct {
	posts      *memBlogPostRepo
	categories *memCategoryRepo
	tags       *memTagRepo
}

func (w memSampleWriter) isEmpty(context.Context) (bool, error) {
	return len(w.categories.table.scan(nil)) == 0, nil
}

func (w memSampleWriter) write(_ context.Context, data SampleData) error {
	for _, c := range data.Categories {
		w.categories.table.insert(c.ID, c)
	}
	for _, t := range data.Tags {
		w.tags.table.insert(t.ID, t)
	}
	for _, p := range data.Posts {
		w.posts.table.insert(p.ID, p)
	}
	return nil
}

type gormSampleWriter struct {
	db *gorm.DB
}

func (w gormSampleWriter) isEmpty(ctx context.Context) (bool, error) {
	var count int64
	err := w.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count == 0, err
}

func (w gormSampleWriter) write(ctx context.Context, data SampleData) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&data.Categories).Error; err != nil {
			return err
		}
		if err := tx.Create(&data.Tags).Error; err != nil {
			return err
		}
		return tx.Create(&data.Posts).Error
	})
}
