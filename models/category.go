package models

import "time"

const DefaultCategoryColor = "#8B5CF6"

// Category is a named grouping of posts
type Category struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Name        string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"type:text;not null"`
	Icon        *string   `json:"icon" gorm:"type:text"`
	PostCount   int       `json:"postCount" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

func (c Category) Clone() Category {
	c.Description = clonePtr(c.Description)
	c.Icon = clonePtr(c.Icon)
	return c
}

type InsertCategory struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (in InsertCategory) Build(id string, now time.Time) Category {
	color := in.Color
	if color == "" {
		color = DefaultCategoryColor
	}
	return Category{
		ID:          id,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Color:       color,
		Icon:        in.Icon,
		CreatedAt:   now,
	}
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (patch CategoryPatch) Columns() []string {
	return patchColumns{}.
		add("name", patch.Name != nil).
		add("slug", patch.Slug != nil).
		add("description", patch.Description != nil).
		add("color", patch.Color != nil).
		add("icon", patch.Icon != nil)
}

func (patch CategoryPatch) Apply(c *Category) {
	setIf(&c.Name, patch.Name)
	setIf(&c.Slug, patch.Slug)
	setIf(&c.Color, patch.Color)
	setOptional(&c.Description, patch.Description)
	setOptional(&c.Icon, patch.Icon)
}
