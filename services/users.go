package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
)

// RegisterUser stores a new user with a bcrypt hash in place of the password
func (b *Blog) RegisterUser(ctx context.Context, in models.InsertUser) (models.User, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, errs.FromValidation(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, errs.NewInternalErrorWithCause("failed to hash password", err)
	}
	in.Password = string(hash)

	user, err := b.db.UserRepo().Add(ctx, in)
	if err != nil {
		return models.User{}, dbErr("create", "user", err)
	}
	b.logger.Info().Str("userId", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

func (b *Blog) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := patch.Validate(); err != nil {
		return models.User{}, errs.FromValidation(err)
	}
	user, err := b.db.UserRepo().Update(ctx, id, patch)
	if err != nil {
		return models.User{}, dbErr("update", "user", err)
	}
	if user == nil {
		return models.User{}, errs.NewNotFound("User")
	}
	return *user, nil
}
