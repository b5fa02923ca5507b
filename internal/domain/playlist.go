package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlayList struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistSummary is one row of a user's playlist listing.
type PlaylistSummary struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	TotalVideos int                `json:"totalVideos" bson:"totalVideos"`
	TotalViews  int64              `json:"totalViews" bson:"totalViews"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistVideo is the whitelisted slice of a video inside a playlist view.
type PlaylistVideo struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// PlaylistDetail is a playlist joined with its videos and owner.
type PlaylistDetail struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Videos      []PlaylistVideo    `json:"videos" bson:"videos"`
	Owner       *OwnerSummary      `json:"owner" bson:"owner,omitempty"`
	TotalVideos int                `json:"totalVideos" bson:"totalVideos"`
	TotalViews  int64              `json:"totalViews" bson:"totalViews"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
