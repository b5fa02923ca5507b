package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                 primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username           string               `json:"username" bson:"username"`
	Email              string               `json:"email" bson:"email"`
	FullName           string               `json:"fullName" bson:"fullName"`
	Avatar             string               `json:"avatar" bson:"avatar"`
	AvatarPublicID     string               `json:"-" bson:"avatarPublicId,omitempty"`
	CoverImage         string               `json:"coverImage" bson:"coverImage"`
	CoverImagePublicID string               `json:"-" bson:"coverImagePublicId,omitempty"`
	PasswordHash       string               `json:"-" bson:"password"`
	RefreshToken       string               `json:"-" bson:"refreshToken,omitempty"`
	WatchHistory       []primitive.ObjectID `json:"watchHistory" bson:"watchHistory"`
	CreatedAt          time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// OwnerSummary is the public slice of a user embedded in joined views.
type OwnerSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	FullName string             `json:"fullName" bson:"fullName"`
	Avatar   string             `json:"avatar" bson:"avatar"`
}

// ChannelProfile is a user's public channel page with subscription counters.
type ChannelProfile struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	Username          string             `json:"username" bson:"username"`
	Email             string             `json:"email" bson:"email"`
	FullName          string             `json:"fullName" bson:"fullName"`
	Avatar            string             `json:"avatar" bson:"avatar"`
	CoverImage        string             `json:"coverImage" bson:"coverImage"`
	SubscribersCount  int                `json:"subscribersCount" bson:"subscribersCount"`
	SubscribedToCount int                `json:"subscribedToCount" bson:"subscribedToCount"`
	IsSubscribed      bool               `json:"isSubscribed" bson:"isSubscribed"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
}
