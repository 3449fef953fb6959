package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

type userHandler struct {
	responder  Responder
	logger     zerolog.Logger
	blog       *services.Blog
	userRepo   database.UserRepository
	followRepo database.FollowRepository
}

func newUserHandler(blog *services.Blog) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		blog:       blog,
		userRepo:   blog.DB().UserRepo(),
		followRepo: blog.DB().FollowRepo(),
	}
}

// @Summary Register user
// @Tags Users
// @Accept json
// @Param user body models.InsertUser true "User"
// @Success 201 {object} models.User
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /api/users [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertUser
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := h.blog.RegisterUser(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, user)
	}
}

// @Summary Get user
// @Tags Users
// @Param id path string true "User id"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return h.findUser("id", h.userRepo.FindByID)
}

// @Summary Get user by wallet
// @Tags Users
// @Param wallet path string true "Wallet address"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /api/users/wallet/{wallet} [get]
func (h userHandler) getUserByWallet() http.HandlerFunc {
	return h.findUser("wallet", h.userRepo.FindByWallet)
}

// @Summary Update profile
// @Tags Users
// @Accept json
// @Param id path string true "User id"
// @Param patch body models.UserPatch true "Fields to change"
// @Success 200 {object} models.User
// @Router /api/users/{id} [put]
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.UserPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := h.blog.UpdateUser(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// @Summary Followers of a user
// @Tags Follows
// @Param id path string true "User id"
// @Success 200 {array} models.Follow
// @Router /api/users/{id}/followers [get]
func (h userHandler) getFollowers() http.HandlerFunc {
	return h.listFollows(h.followRepo.Followers)
}

// @Summary Users a user follows
// @Tags Follows
// @Param id path string true "User id"
// @Success 200 {array} models.Follow
// @Router /api/users/{id}/following [get]
func (h userHandler) getFollowing() http.HandlerFunc {
	return h.listFollows(h.followRepo.Following)
}

// @Summary Follow a user
// @Tags Follows
// @Accept json
// @Param follow body models.InsertFollow true "Follow"
// @Success 201 {object} models.Follow
// @Failure 400 {object} ErrorResponse "Self follow"
// @Failure 409 {object} ErrorResponse "Already following"
// @Router /api/follows [post]
func (h userHandler) createFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertFollow
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		follow, err := h.blog.Follow(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, follow)
	}
}

// @Summary Unfollow
// @Tags Follows
// @Param id path string true "Follow id"
// @Success 200 {object} MessageResponse
// @Router /api/follows/{id} [delete]
func (h userHandler) deleteFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blog.Unfollow(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Unfollowed successfully")
	}
}

func (h userHandler) findUser(key string, find func(ctx context.Context, value string) (*models.User, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := pathParam(r, key)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := find(r.Context(), value)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("User"))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) listFollows(list func(ctx context.Context, userID string) ([]models.Follow, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		follows, err := list(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "follows", err))
			return
		}
		h.responder.WriteJSON(w, follows)
	}
}
