package mongodb

import (
	"context"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type subscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *subscriptionRepository {
	return &subscriptionRepository{coll: db.Collection(pipeline.Subscriptions)}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error) {
	var sub domain.Subscription
	filter := bson.D{{Key: "subscriber", Value: subscriber}, {Key: "channel", Value: channel}}
	if err := r.coll.FindOne(ctx, filter).Decode(&sub); err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	sub.CreatedAt = now()
	sub.UpdatedAt = sub.CreatedAt

	_, err := r.coll.InsertOne(ctx, sub)
	return translate(err)
}

func (r *subscriptionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
