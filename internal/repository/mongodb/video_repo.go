package mongodb

import (
	"context"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type videoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *videoRepository {
	return &videoRepository{coll: db.Collection(pipeline.Videos)}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	video.CreatedAt = now()
	video.UpdatedAt = video.CreatedAt

	_, err := r.coll.InsertOne(ctx, video)
	return translate(err)
}

func (r *videoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&video); err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, includeUnpublished bool) ([]*domain.Video, error) {
	filter := bson.D{{Key: "owner", Value: owner}}
	if !includeUnpublished {
		filter = append(filter, bson.E{Key: "isPublished", Value: true})
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate(err)
	}
	videos := []*domain.Video{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, translate(err)
	}
	return videos, nil
}

func (r *videoRepository) UpdateDetails(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: video.Title},
		{Key: "description", Value: video.Description},
		{Key: "thumbnail", Value: video.Thumbnail},
		{Key: "thumbnailPublicId", Value: video.ThumbnailPublicID},
		{Key: "updatedAt", Value: now()},
	}}}

	var updated domain.Video
	if err := r.coll.FindOneAndUpdate(ctx, byID(video.ID), update, returnAfter()).Decode(&updated); err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// TogglePublished flips isPublished in a single pipeline update.
func (r *videoRepository) TogglePublished(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: bson.D{{Key: "$not", Value: bson.A{"$isPublished"}}}},
			{Key: "updatedAt", Value: now()},
		}}},
	}

	var updated domain.Video
	if err := r.coll.FindOneAndUpdate(ctx, byID(id), update, returnAfter()).Decode(&updated); err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: int64(1)}}}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
