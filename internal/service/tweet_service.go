package service

import (
	"context"
	"strings"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTweetNotFound = domain.NotFound("tweet not found")
	ErrNoTweets      = domain.NotFound("no tweets found")
)

type TweetService struct {
	tweets repository.TweetRepository
	views  repository.ViewRepository
}

func NewTweetService(tweets repository.TweetRepository, views repository.ViewRepository) *TweetService {
	return &TweetService{tweets: tweets, views: views}
}

func (s *TweetService) Create(ctx context.Context, owner primitive.ObjectID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}

	tweet := &domain.Tweet{Content: content, Owner: owner}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, fromStore(err, "")
	}
	return tweet, nil
}

// UserTweets lists the owner's tweets; an empty result is ErrNoTweets.
func (s *TweetService) UserTweets(ctx context.Context, owner primitive.ObjectID) ([]domain.TweetView, error) {
	tweets, err := s.views.UserTweets(ctx, owner)
	if err != nil {
		return nil, fromStore(err, "")
	}
	if len(tweets) == 0 {
		return nil, ErrNoTweets
	}
	return tweets, nil
}

func (s *TweetService) AllTweets(ctx context.Context) ([]domain.TweetView, error) {
	tweets, err := s.views.AllTweets(ctx)
	if err != nil {
		return nil, fromStore(err, "")
	}
	if len(tweets) == 0 {
		return nil, ErrNoTweets
	}
	return tweets, nil
}

func (s *TweetService) loadOwned(ctx context.Context, id, caller primitive.ObjectID) (*domain.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrTweetNotFound.Error())
	}
	if err := requireOwner(tweet.Owner, caller, "you are not allowed to modify this tweet"); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Update(ctx context.Context, id, caller primitive.ObjectID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}
	if _, err := s.loadOwned(ctx, id, caller); err != nil {
		return nil, err
	}

	tweet, err := s.tweets.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, fromStore(err, ErrTweetNotFound.Error())
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, id, caller primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, id, caller); err != nil {
		return err
	}
	return fromStore(s.tweets.Delete(ctx, id), ErrTweetNotFound.Error())
}
