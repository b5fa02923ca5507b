package mongodb

import (
	"context"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type playlistRepository struct {
	coll *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *playlistRepository {
	return &playlistRepository{coll: db.Collection(pipeline.Playlists)}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.PlayList) error {
	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	playlist.CreatedAt = now()
	playlist.UpdatedAt = playlist.CreatedAt

	_, err := r.coll.InsertOne(ctx, playlist)
	return translate(err)
}

func (r *playlistRepository) findOne(ctx context.Context, filter any) (*domain.PlayList, error) {
	var playlist domain.PlayList
	if err := r.coll.FindOne(ctx, filter).Decode(&playlist); err != nil {
		return nil, translate(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlayList, error) {
	return r.findOne(ctx, byID(id))
}

func (r *playlistRepository) GetByOwnerAndName(ctx context.Context, owner primitive.ObjectID, name string) (*domain.PlayList, error) {
	return r.findOne(ctx, bson.D{{Key: "owner", Value: owner}, {Key: "name", Value: name}})
}

func (r *playlistRepository) update(ctx context.Context, id primitive.ObjectID, update bson.D) (*domain.PlayList, error) {
	update = append(update, bson.E{Key: "$currentDate", Value: bson.D{{Key: "updatedAt", Value: true}}})
	var playlist domain.PlayList
	if err := r.coll.FindOneAndUpdate(ctx, byID(id), update, returnAfter()).Decode(&playlist); err != nil {
		return nil, translate(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.PlayList, error) {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "description", Value: description},
	}}})
}

func (r *playlistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.PlayList, error) {
	return r.update(ctx, id, bson.D{{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: videoID}}}})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.PlayList, error) {
	return r.update(ctx, id, bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}}})
}

func (r *playlistRepository) PullVideoFromAll(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "videos", Value: videoID}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}}},
	)
	return translate(err)
}

func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
