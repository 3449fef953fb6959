package models

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

var (
	walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// IsWalletAddress reports whether s is a 0x-prefixed 20 byte hex address
func IsWalletAddress(s string) bool {
	return walletPattern.MatchString(s)
}

var (
	slugRule  = validation.Match(slugPattern).Error("must be lowercase words separated by hyphens")
	colorRule = is.HexColor.Error("must be a hex color such as #8B5CF6")
	tagsRule  = validation.By(func(value interface{}) error {
		var tags []string
		switch v := value.(type) {
		case []string:
			tags = v
		case *[]string:
			if v == nil {
				return nil
			}
			tags = *v
		}
		return validation.Validate(tags,
			validation.Length(0, 20).Error("at most 20 tags are allowed"),
			validation.Each(validation.Required.Error("tags cannot be blank"), validation.Length(1, 50)),
		)
	})
)

func (in InsertBlogPost) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required"), validation.Length(1, 200)),
		validation.Field(&in.Content, validation.Required.Error("content is required")),
		validation.Field(&in.Excerpt, validation.Required.Error("excerpt is required"), validation.Length(1, 500)),
		validation.Field(&in.Author, validation.Required.Error("author is required")),
		validation.Field(&in.ChainID, validation.Required.Error("chainId is required"), is.Digit),
		validation.Field(&in.CoverImage, is.URL),
		validation.Field(&in.Tags, tagsRule),
		validation.Field(&in.ReadingTime, validation.Min(0)),
	)
}

func (patch BlogPostPatch) Validate() error {
	return validation.ValidateStruct(&patch,
		validation.Field(&patch.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&patch.Content, validation.NilOrNotEmpty),
		validation.Field(&patch.Excerpt, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&patch.CoverImage, is.URL),
		validation.Field(&patch.Tags, tagsRule),
		validation.Field(&patch.ReadingTime, validation.When(patch.ReadingTime != nil,
			validation.Required.Error("readingTime must be at least 1"),
			validation.Min(1),
		)),
	)
}

func (in InsertCategory) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.Length(1, 50)),
		validation.Field(&in.Slug, validation.Required.Error("slug is required"), slugRule),
		validation.Field(&in.Color, colorRule),
	)
}

func (patch CategoryPatch) Validate() error {
	return validation.ValidateStruct(&patch,
		validation.Field(&patch.Name, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&patch.Slug, validation.NilOrNotEmpty, slugRule),
		validation.Field(&patch.Color, colorRule),
	)
}

func (in InsertTag) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.Length(1, 50)),
		validation.Field(&in.Slug, validation.Required.Error("slug is required"), slugRule),
		validation.Field(&in.Color, colorRule),
	)
}

func (patch TagPatch) Validate() error {
	return validation.ValidateStruct(&patch,
		validation.Field(&patch.Name, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&patch.Slug, validation.NilOrNotEmpty, slugRule),
		validation.Field(&patch.Color, colorRule),
	)
}

func (in InsertComment) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PostID, validation.Required.Error("postId is required")),
		validation.Field(&in.AuthorWallet, validation.Required.Error("authorWallet is required")),
		validation.Field(&in.Content, validation.Required.Error("content is required"), validation.Length(1, 5000)),
	)
}

func (patch CommentPatch) Validate() error {
	return validation.ValidateStruct(&patch,
		validation.Field(&patch.Content, validation.NilOrNotEmpty, validation.Length(1, 5000)),
	)
}

func (in InsertLike) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.WalletAddress, validation.Required.Error("walletAddress is required")),
		validation.Field(&in.PostID,
			validation.When(in.CommentID == nil, validation.Required.Error("postId or commentId is required")),
		),
	)
}

func (in InsertFollow) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FollowerID, validation.Required.Error("followerId is required")),
		validation.Field(&in.FollowingID, validation.Required.Error("followingId is required")),
	)
}

func (in InsertUser) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required.Error("username is required"), validation.Length(3, 50)),
		validation.Field(&in.Password, validation.Required.Error("password is required"), validation.Length(8, 72)),
		validation.Field(&in.WalletAddress, validation.Match(walletPattern).Error("must be a 0x prefixed wallet address")),
		validation.Field(&in.Avatar, is.URL),
		validation.Field(&in.Website, is.URL),
		validation.Field(&in.Bio, validation.Length(0, 500)),
	)
}

func (patch UserPatch) Validate() error {
	return validation.ValidateStruct(&patch,
		validation.Field(&patch.WalletAddress, validation.Match(walletPattern).Error("must be a 0x prefixed wallet address")),
		validation.Field(&patch.Avatar, is.URL),
		validation.Field(&patch.Website, is.URL),
		validation.Field(&patch.Bio, validation.Length(0, 500)),
	)
}

func (r EarningsRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required.Error("userId is required")),
		validation.Field(&r.Amount, validation.By(func(value interface{}) error {
			amount, _ := value.(decimal.Decimal)
			if !amount.IsPositive() {
				return errors.New("amount must be a positive number of wei")
			}
			if !amount.IsInteger() {
				return errors.New("amount must be a whole number of wei")
			}
			return nil
		})),
	)
}
