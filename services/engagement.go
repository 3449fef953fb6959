package services

import (
	"context"

	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/metrics"
	"github.com/rpupo63/chainblog-backend/models"
)

// Comments

func (b *Blog) AddComment(ctx context.Context, in models.InsertComment) (models.Comment, error) {
	if err := in.Validate(); err != nil {
		return models.Comment{}, errs.FromValidation(err)
	}
	if err := b.requirePost(ctx, in.PostID); err != nil {
		return models.Comment{}, err
	}
	if in.ParentID != nil {
		parent, err := b.db.CommentRepo().FindByID(ctx, *in.ParentID)
		if err != nil {
			return models.Comment{}, dbErr("get", "comment", err)
		}
		if parent == nil || parent.PostID != in.PostID {
			return models.Comment{}, errs.NewNotFound("Parent comment")
		}
	}

	comment, err := b.db.CommentRepo().Add(ctx, in)
	if err != nil {
		return models.Comment{}, dbErr("create", "comment", err)
	}
	err = b.db.BlogPostRepo().AdjustEngagement(ctx, in.PostID, models.Engagement{Comments: 1})
	b.counterFailed(err, "post.comments", in.PostID)
	b.invalidate(ctx, cache.PrefixPosts)
	return comment, nil
}

func (b *Blog) UpdateComment(ctx context.Context, id string, patch models.CommentPatch) (models.Comment, error) {
	if err := patch.Validate(); err != nil {
		return models.Comment{}, errs.FromValidation(err)
	}
	comment, err := b.db.CommentRepo().Update(ctx, id, patch)
	if err != nil {
		return models.Comment{}, dbErr("update", "comment", err)
	}
	if comment == nil {
		return models.Comment{}, errs.NewNotFound("Comment")
	}
	return *comment, nil
}

func (b *Blog) DeleteComment(ctx context.Context, id string) error {
	comments := b.db.CommentRepo()
	comment, err := comments.FindByID(ctx, id)
	if err != nil {
		return dbErr("get", "comment", err)
	}
	if comment == nil {
		return errs.NewNotFound("Comment")
	}
	deleted, err := comments.Delete(ctx, id)
	if err != nil {
		return dbErr("delete", "comment", err)
	}
	if !deleted {
		return errs.NewNotFound("Comment")
	}
	err = b.db.BlogPostRepo().AdjustEngagement(ctx, comment.PostID, models.Engagement{Comments: -1})
	b.counterFailed(err, "post.comments", comment.PostID)
	b.invalidate(ctx, cache.PrefixPosts)
	return nil
}

// Likes

// Like records a like once per identity (target, user and wallet). A repeated
// like is rejected with a conflict and changes nothing.
func (b *Blog) Like(ctx context.Context, in models.InsertLike) (models.Like, error) {
	if err := in.Validate(); err != nil {
		return models.Like{}, errs.FromValidation(err)
	}
	authorID, err := b.likeTargetAuthor(ctx, in.PostID, in.CommentID)
	if err != nil {
		return models.Like{}, err
	}

	like, created, err := b.db.LikeRepo().FindOrAdd(ctx, in)
	if err != nil {
		return models.Like{}, dbErr("create", "like", err)
	}
	if !created {
		metrics.EngagementConflicts.WithLabelValues("like").Inc()
		return models.Like{}, errs.NewAlreadyLikedError()
	}

	b.adjustLikeCounters(ctx, like, authorID, 1)
	return like, nil
}

func (b *Blog) Unlike(ctx context.Context, id string) error {
	likes := b.db.LikeRepo()
	like, err := likes.FindByID(ctx, id)
	if err != nil {
		return dbErr("get", "like", err)
	}
	if like == nil {
		return errs.NewNotFound("Like")
	}
	deleted, err := likes.Delete(ctx, id)
	if err != nil {
		return dbErr("delete", "like", err)
	}
	if !deleted {
		return errs.NewNotFound("Like")
	}

	// The target may be gone already; its counters then no longer matter.
	authorID, err := b.likeTargetAuthor(ctx, like.PostID, like.CommentID)
	if err != nil && !errs.IsNotFound(err) {
		return err
	}
	b.adjustLikeCounters(ctx, *like, authorID, -1)
	return nil
}

// likeTargetAuthor checks the liked comment (or post) exists and returns its author id
func (b *Blog) likeTargetAuthor(ctx context.Context, postID, commentID *string) (*string, error) {
	if commentID != nil {
		comment, err := b.db.CommentRepo().FindByID(ctx, *commentID)
		if err != nil {
			return nil, dbErr("get", "comment", err)
		}
		if comment == nil {
			return nil, errs.NewNotFound("Comment")
		}
		return comment.AuthorID, nil
	}

	post, err := b.db.BlogPostRepo().FindByID(ctx, *postID)
	if err != nil {
		return nil, dbErr("get", "blog post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("Blog post")
	}
	return post.AuthorID, nil
}

func (b *Blog) adjustLikeCounters(ctx context.Context, like models.Like, authorID *string, delta int) {
	if like.CommentID != nil {
		err := b.db.CommentRepo().AdjustLikes(ctx, *like.CommentID, delta)
		b.counterFailed(err, "comment.likes", *like.CommentID)
	} else if like.PostID != nil {
		err := b.db.BlogPostRepo().AdjustEngagement(ctx, *like.PostID, models.Engagement{Likes: delta})
		b.counterFailed(err, "post.likes", *like.PostID)
		b.invalidate(ctx, cache.PrefixPosts)
	}
	if authorID != nil {
		err := b.db.UserRepo().AdjustCounters(ctx, *authorID, models.UserCounters{TotalLikes: delta})
		b.counterFailed(err, "user.totalLikes", *authorID)
	}
}

// Follows

func (b *Blog) Follow(ctx context.Context, in models.InsertFollow) (models.Follow, error) {
	if err := in.Validate(); err != nil {
		return models.Follow{}, errs.FromValidation(err)
	}
	if in.FollowerID == in.FollowingID {
		return models.Follow{}, errs.NewSelfFollowError()
	}
	for _, id := range []string{in.FollowerID, in.FollowingID} {
		if _, err := b.requireUser(ctx, id); err != nil {
			return models.Follow{}, err
		}
	}

	follow, created, err := b.db.FollowRepo().FindOrAdd(ctx, in)
	if err != nil {
		return models.Follow{}, dbErr("create", "follow", err)
	}
	if !created {
		metrics.EngagementConflicts.WithLabelValues("follow").Inc()
		return models.Follow{}, errs.NewAlreadyFollowedError()
	}

	b.adjustFollowCounters(ctx, follow, 1)
	return follow, nil
}

func (b *Blog) Unfollow(ctx context.Context, id string) error {
	follows := b.db.FollowRepo()
	follow, err := follows.FindByID(ctx, id)
	if err != nil {
		return dbErr("get", "follow", err)
	}
	if follow == nil {
		return errs.NewNotFound("Follow")
	}
	deleted, err := follows.Delete(ctx, id)
	if err != nil {
		return dbErr("delete", "follow", err)
	}
	if !deleted {
		return errs.NewNotFound("Follow")
	}
	b.adjustFollowCounters(ctx, *follow, -1)
	return nil
}

func (b *Blog) adjustFollowCounters(ctx context.Context, follow models.Follow, delta int) {
	users := b.db.UserRepo()
	err := users.AdjustCounters(ctx, follow.FollowerID, models.UserCounters{Following: delta})
	b.counterFailed(err, "user.following", follow.FollowerID)
	err = users.AdjustCounters(ctx, follow.FollowingID, models.UserCounters{Followers: delta})
	b.counterFailed(err, "user.followers", follow.FollowingID)
}

func (b *Blog) requirePost(ctx context.Context, id string) error {
	post, err := b.db.BlogPostRepo().FindByID(ctx, id)
	if err != nil {
		return dbErr("get", "blog post", err)
	}
	if post == nil {
		return errs.NewNotFound("Blog post")
	}
	return nil
}

func (b *Blog) requireUser(ctx context.Context, id string) (models.User, error) {
	user, err := b.db.UserRepo().FindByID(ctx, id)
	if err != nil {
		return models.User{}, dbErr("get", "user", err)
	}
	if user == nil {
		return models.User{}, errs.NewNotFound("User")
	}
	return *user, nil
}
