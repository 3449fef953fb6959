package models

import "time"

const DefaultTagColor = "#6B7280"

// Tag is a named label attached to posts by name
type Tag struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Name        string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"type:text;not null"`
	PostCount   int       `json:"postCount" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

func (t Tag) Clone() Tag {
	t.Description = clonePtr(t.Description)
	return t
}

type InsertTag struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

func (in InsertTag) Build(id string, now time.Time) Tag {
	color := in.Color
	if color == "" {
		color = DefaultTagColor
	}
	return Tag{
		ID:          id,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
	}
}

type TagPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (patch TagPatch) Columns() []string {
	return patchColumns{}.
		add("name", patch.Name != nil).
		add("slug", patch.Slug != nil).
		add("description", patch.Description != nil).
		add("color", patch.Color != nil)
}

func (patch TagPatch) Apply(t *Tag) {
	setIf(&t.Name, patch.Name)
	setIf(&t.Slug, patch.Slug)
	setIf(&t.Color, patch.Color)
	setOptional(&t.Description, patch.Description)
}
