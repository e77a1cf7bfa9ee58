package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
	"github.com/warblerhq/warbler/internal/validate"
)

func (s *AppService) CreatePost(ctx context.Context, actorID int64, content, media string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if err := validate.PostContent(content); err != nil {
		return domain.Post{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}
	return s.DB.CreatePost(ctx, actorID, content, media, 0, 0)
}

func (s *AppService) CreateReply(ctx context.Context, actorID, parentID int64, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if err := validate.PostContent(content); err != nil {
		return domain.Post{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	parent, err := s.DB.GetPost(ctx, parentID)
	if err != nil {
		return domain.Post{}, err
	}

	reply, err := s.DB.CreatePost(ctx, actorID, content, "", parentID, 0)
	if err != nil {
		return domain.Post{}, err
	}

	s.notify(ctx, parent.Author.ID, actorID, domain.NotifyReply, reply.ID)
	return reply, nil
}

// CreateQuote requires text but does not cap its length; only plain posts and replies
// carry the 280 character limit.
func (s *AppService) CreateQuote(ctx context.Context, actorID, quotedID int64, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if err := validate.Required(content); err != nil {
		return domain.Post{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	quoted, err := s.DB.GetPost(ctx, quotedID)
	if err != nil {
		return domain.Post{}, err
	}

	quote, err := s.DB.CreatePost(ctx, actorID, content, "", 0, quotedID)
	if err != nil {
		return domain.Post{}, err
	}

	s.notify(ctx, quoted.Author.ID, actorID, domain.NotifyQuote, quote.ID)
	return quote, nil
}

// ToggleLike adds the actor to the post's likes set, or removes them when already
// present. The per-post lock serializes toggles so a double-click from the same account
// cannot race its own read-then-write.
func (s *AppService) ToggleLike(ctx context.Context, actorID, postID int64) (domain.AnnotatedPost, error) {
	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	post, err := s.DB.GetPost(ctx, postID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	liked, err := s.DB.HasLiked(ctx, postID, actorID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	if liked {
		err = s.DB.RemoveLike(ctx, postID, actorID)
	} else {
		err = s.DB.AddLike(ctx, postID, actorID)
	}
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	if !liked {
		s.notify(ctx, post.Author.ID, actorID, domain.NotifyLike, postID)
	}
	return s.annotate(ctx, postID, actorID)
}

// ToggleRetweet mirrors ToggleLike on the retweets set. The relation doubles as the
// actor's personal retweet list, so both sides of the mutation are one row.
func (s *AppService) ToggleRetweet(ctx context.Context, actorID, postID int64) (domain.AnnotatedPost, error) {
	unlock := s.locks.Lock(postKey(postID))
	defer unlock()

	post, err := s.DB.GetPost(ctx, postID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	retweeted, err := s.DB.HasRetweeted(ctx, postID, actorID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	if retweeted {
		err = s.DB.RemoveRetweet(ctx, postID, actorID)
	} else {
		err = s.DB.AddRetweet(ctx, postID, actorID)
	}
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	if !retweeted {
		s.notify(ctx, post.Author.ID, actorID, domain.NotifyRetweet, postID)
	}
	return s.annotate(ctx, postID, actorID)
}

func (s *AppService) DeletePost(ctx context.Context, actorID, postID int64) error {
	post, err := s.DB.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author.ID != actorID {
		return fmt.Errorf("%w: only the author can delete a post", service.ErrForbidden)
	}
	return s.DB.DeletePost(ctx, postID)
}

func (s *AppService) GetPost(ctx context.Context, postID int64) (domain.Post, error) {
	return s.DB.GetPost(ctx, postID)
}

func (s *AppService) GetReplies(ctx context.Context, postID int64, page, limit int) ([]domain.Post, domain.Page, error) {
	if _, err := s.DB.GetPost(ctx, postID); err != nil {
		return nil, domain.Page{}, err
	}

	page, limit = clampPaging(page, limit)
	replies, err := s.DB.GetReplies(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}

	total, err := s.DB.CountReplies(ctx, postID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return replies, pageMeta(total, page, limit), nil
}

func (s *AppService) GetUserPosts(ctx context.Context, username string, page, limit int) ([]domain.Post, domain.Page, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.Page{}, err
	}

	page, limit = clampPaging(page, limit)
	posts, err := s.DB.GetPostsByAuthor(ctx, user.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}

	total, err := s.DB.CountPostsByAuthor(ctx, user.ID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return posts, pageMeta(total, page, limit), nil
}

func (s *AppService) annotate(ctx context.Context, postID, actorID int64) (domain.AnnotatedPost, error) {
	post, err := s.DB.GetPost(ctx, postID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}

	liked, err := s.DB.HasLiked(ctx, postID, actorID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}
	retweeted, err := s.DB.HasRetweeted(ctx, postID, actorID)
	if err != nil {
		return domain.AnnotatedPost{}, err
	}
	return domain.AnnotatedPost{Post: post, Liked: liked, Retweeted: retweeted}, nil
}

func (s *AppService) notify(ctx context.Context, recipientID, senderID int64, kind string, postID int64) {
	if err := s.notifier.Notify(ctx, recipientID, senderID, kind, postID); err != nil {
		log.Error().Err(err).Str("kind", kind).Int64("recipient", recipientID).
			Msg("failed to enqueue notification")
	}
}

func postKey(postID int64) string {
	return strconv.FormatInt(postID, 10)
}
