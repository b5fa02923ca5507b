package service

import (
	"context"
	"errors"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
	views repository.ViewRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository, views repository.ViewRepository) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, views: views}
}

// Toggle subscribes subscriber to channel, or unsubscribes when the edge
// already exists. It reports the resulting state.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if subscriber == channel {
		return false, domain.Validation("you cannot subscribe to your own channel")
	}
	if _, err := s.users.GetByID(ctx, channel); err != nil {
		return false, fromStore(err, "channel not found")
	}

	existing, err := s.subs.Find(ctx, subscriber, channel)
	switch {
	case err == nil:
		if err := s.subs.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, fromStore(err, "")
		}
		return false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return false, fromStore(err, "")
	}

	err = s.subs.Create(ctx, &domain.Subscription{Subscriber: subscriber, Channel: channel})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return false, fromStore(err, "")
	}
	return true, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.OwnerSummary, error) {
	subs, err := s.views.ChannelSubscribers(ctx, channel)
	if err != nil {
		return nil, fromStore(err, "")
	}
	return subs, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.OwnerSummary, error) {
	channels, err := s.views.SubscribedChannels(ctx, subscriber)
	if err != nil {
		return nil, fromStore(err, "")
	}
	return channels, nil
}
