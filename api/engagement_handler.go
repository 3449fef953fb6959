package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blog        *services.Blog
	commentRepo database.CommentRepository
}

func newCommentHandler(blog *services.Blog) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blog:        blog,
		commentRepo: blog.DB().CommentRepo(),
	}
}

// @Summary Comments of a post, newest first
// @Tags Comments
// @Param postId path string true "Blog post id"
// @Success 200 {array} models.Comment
// @Router /api/comments/post/{postId} [get]
func (h commentHandler) getCommentsByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathParam(r, "postId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comments, err := h.commentRepo.FindByPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}
		h.responder.WriteJSON(w, comments)
	}
}

// createComment adds a comment. authorWallet defaults to the connected wallet.
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Param comment body models.InsertComment true "Comment"
// @Success 201 {object} models.Comment
// @Failure 404 {object} ErrorResponse "Post or parent comment not found"
// @Router /api/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertComment
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if in.AuthorWallet == "" {
			in.AuthorWallet = ctxGetWalletAddress(r.Context())
		}

		comment, err := h.blog.AddComment(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, comment)
	}
}

// @Summary Update comment
// @Tags Comments
// @Accept json
// @Param id path string true "Comment id"
// @Param patch body models.CommentPatch true "Fields to change"
// @Success 200 {object} models.Comment
// @Router /api/comments/{id} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.CommentPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comment, err := h.blog.UpdateComment(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

// @Summary Delete comment
// @Tags Comments
// @Param id path string true "Comment id"
// @Success 200 {object} MessageResponse
// @Router /api/comments/{id} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blog.DeleteComment(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Comment deleted successfully")
	}
}

type likeHandler struct {
	responder Responder
	logger    zerolog.Logger
	blog      *services.Blog
	likeRepo  database.LikeRepository
}

func newLikeHandler(blog *services.Blog) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blog:      blog,
		likeRepo:  blog.DB().LikeRepo(),
	}
}

// @Summary Likes of a post
// @Tags Likes
// @Param postId path string true "Blog post id"
// @Success 200 {array} models.Like
// @Router /api/likes/post/{postId} [get]
func (h likeHandler) getLikesByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathParam(r, "postId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		likes, err := h.likeRepo.FindByPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "likes", err))
			return
		}
		h.responder.WriteJSON(w, likes)
	}
}

// createLike likes a post or comment once. walletAddress defaults to the connected wallet.
// @Summary Like
// @Tags Likes
// @Accept json
// @Param like body models.InsertLike true "Like"
// @Success 201 {object} models.Like
// @Failure 409 {object} ErrorResponse "Already liked"
// @Router /api/likes [post]
func (h likeHandler) createLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertLike
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if in.WalletAddress == "" {
			in.WalletAddress = ctxGetWalletAddress(r.Context())
		}

		like, err := h.blog.Like(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, like)
	}
}

// @Summary Unlike
// @Tags Likes
// @Param id path string true "Like id"
// @Success 200 {object} MessageResponse
// @Router /api/likes/{id} [delete]
func (h likeHandler) deleteLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blog.Unlike(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Like removed successfully")
	}
}
