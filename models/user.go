package models

import "time"

// User is a registered author or reader. The password hash never leaves the server.
type User struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Username      string    `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Password      string    `json:"-" gorm:"type:text;not null"`
	WalletAddress *string   `json:"walletAddress" gorm:"type:text;index"`
	DisplayName   *string   `json:"displayName" gorm:"type:text"`
	Bio           *string   `json:"bio" gorm:"type:text"`
	Avatar        *string   `json:"avatar" gorm:"type:text"`
	Website       *string   `json:"website" gorm:"type:text"`
	Twitter       *string   `json:"twitter" gorm:"type:text"`
	IsVerified    bool      `json:"isVerified" gorm:"not null;default:false"`
	TotalPosts    int       `json:"totalPosts" gorm:"type:integer;not null;default:0"`
	TotalLikes    int       `json:"totalLikes" gorm:"type:integer;not null;default:0"`
	Followers     int       `json:"followers" gorm:"type:integer;not null;default:0"`
	Following     int       `json:"following" gorm:"type:integer;not null;default:0"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"not null"`
}

func (u User) Clone() User {
	u.WalletAddress = clonePtr(u.WalletAddress)
	u.DisplayName = clonePtr(u.DisplayName)
	u.Bio = clonePtr(u.Bio)
	u.Avatar = clonePtr(u.Avatar)
	u.Website = clonePtr(u.Website)
	u.Twitter = clonePtr(u.Twitter)
	return u
}

// InsertUser is the registration payload. Password is plain text here and is
// replaced by its hash before the user reaches a repository.
type InsertUser struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	WalletAddress *string `json:"walletAddress,omitempty"`
	DisplayName   *string `json:"displayName,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Website       *string `json:"website,omitempty"`
	Twitter       *string `json:"twitter,omitempty"`
}

func (in InsertUser) Build(id string, now time.Time) User {
	return User{
		ID:            id,
		Username:      in.Username,
		Password:      in.Password,
		WalletAddress: in.WalletAddress,
		DisplayName:   in.DisplayName,
		Bio:           in.Bio,
		Avatar:        in.Avatar,
		Website:       in.Website,
		Twitter:       in.Twitter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

type UserPatch struct {
	WalletAddress *string `json:"walletAddress,omitempty"`
	DisplayName   *string `json:"displayName,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Website       *string `json:"website,omitempty"`
	Twitter       *string `json:"twitter,omitempty"`
	IsVerified    *bool   `json:"isVerified,omitempty"`
}

func (patch UserPatch) Columns() []string {
	return patchColumns{"updated_at"}.
		add("wallet_address", patch.WalletAddress != nil).
		add("display_name", patch.DisplayName != nil).
		add("bio", patch.Bio != nil).
		add("avatar", patch.Avatar != nil).
		add("website", patch.Website != nil).
		add("twitter", patch.Twitter != nil).
		add("is_verified", patch.IsVerified != nil)
}

func (patch UserPatch) Apply(u *User, now time.Time) {
	setOptional(&u.WalletAddress, patch.WalletAddress)
	setOptional(&u.DisplayName, patch.DisplayName)
	setOptional(&u.Bio, patch.Bio)
	setOptional(&u.Avatar, patch.Avatar)
	setOptional(&u.Website, patch.Website)
	setOptional(&u.Twitter, patch.Twitter)
	setIf(&u.IsVerified, patch.IsVerified)
	u.UpdatedAt = now
}

// UserCounters holds signed deltas for the denormalized user counters
type UserCounters struct {
	TotalPosts int
	TotalLikes int
	Followers  int
	Following  int
}

func (c UserCounters) IsZero() bool {
	return c == UserCounters{}
}
