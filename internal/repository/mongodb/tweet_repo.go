package mongodb

import (
	"context"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tweetRepository struct {
	coll *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *tweetRepository {
	return &tweetRepository{coll: db.Collection(pipeline.Tweets)}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID.IsZero() {
		tweet.ID = primitive.NewObjectID()
	}
	tweet.CreatedAt = now()
	tweet.UpdatedAt = tweet.CreatedAt

	_, err := r.coll.InsertOne(ctx, tweet)
	return translate(err)
}

func (r *tweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&tweet); err != nil {
		return nil, translate(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: now()},
	}}}

	var tweet domain.Tweet
	if err := r.coll.FindOneAndUpdate(ctx, byID(id), update, returnAfter()).Decode(&tweet); err != nil {
		return nil, translate(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
