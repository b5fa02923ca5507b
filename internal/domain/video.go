package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title             string             `json:"title" bson:"title"`
	Description       string             `json:"description" bson:"description"`
	VideoFile         string             `json:"videoFile" bson:"videoFile"`
	VideoFilePublicID string             `json:"-" bson:"videoFilePublicId,omitempty"`
	Thumbnail         string             `json:"thumbnail" bson:"thumbnail"`
	ThumbnailPublicID string             `json:"-" bson:"thumbnailPublicId,omitempty"`
	Duration          float64            `json:"duration" bson:"duration"`
	Views             int64              `json:"views" bson:"views"`
	IsPublished       bool               `json:"isPublished" bson:"isPublished"`
	Owner             primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// WatchedVideo is a watch-history entry with its owner flattened in.
type WatchedVideo struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	Owner       *OwnerSummary      `json:"owner" bson:"owner,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
