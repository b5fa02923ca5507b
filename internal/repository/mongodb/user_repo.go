package mongodb

import (
	"context"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/pipeline"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{coll: db.Collection(pipeline.Users)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *userRepository) findOne(ctx context.Context, filter any) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, byID(id))
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	var or bson.A
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, translate(mongo.ErrNoDocuments)
	}
	return r.findOne(ctx, bson.D{{Key: "$or", Value: or}})
}

func (r *userRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.D) (*domain.User, error) {
	fields = append(fields, bson.E{Key: "updatedAt", Value: now()})
	var user domain.User
	err := r.coll.FindOneAndUpdate(ctx, byID(id), bson.D{{Key: "$set", Value: fields}}, returnAfter()).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*domain.User, error) {
	return r.set(ctx, id, bson.D{{Key: "fullName", Value: fullName}, {Key: "email", Value: email}})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.set(ctx, id, bson.D{{Key: "password", Value: hash}})
	return err
}

func (r *userRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error) {
	return r.set(ctx, id, bson.D{{Key: "avatar", Value: url}, {Key: "avatarPublicId", Value: publicID}})
}

func (r *userRepository) SetCoverImage(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error) {
	return r.set(ctx, id, bson.D{{Key: "coverImage", Value: url}, {Key: "coverImagePublicId", Value: publicID}})
}

// PushWatchHistory moves videoID to the front of the user's history.
func (r *userRepository) PushWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error {
	if _, err := r.coll.UpdateOne(ctx, byID(id), bson.D{
		{Key: "$pull", Value: bson.D{{Key: "watchHistory", Value: videoID}}},
	}); err != nil {
		return translate(err)
	}

	res, err := r.coll.UpdateOne(ctx, byID(id), bson.D{
		{Key: "$push", Value: bson.D{{Key: "watchHistory", Value: bson.D{
			{Key: "$each", Value: bson.A{videoID}},
			{Key: "$position", Value: 0},
		}}}},
	})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	res, err := r.coll.UpdateOne(ctx, byID(id), bson.D{
		{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}},
	})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *userRepository) SwapRefreshToken(ctx context.Context, id primitive.ObjectID, expected, next string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "refreshToken", Value: expected}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: next}}}},
	)
	if err != nil {
		return false, translate(err)
	}
	return res.MatchedCount == 1, nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, byID(id), bson.D{
		{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}},
	})
	return translate(err)
}
