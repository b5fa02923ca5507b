package pipeline

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	Users         = "users"
	Videos        = "videos"
	Playlists     = "playlists"
	Tweets        = "tweets"
	Subscriptions = "subscriptions"
)

var insertionOrder = Sort{{Key: "_id", Value: 1}}

// ChannelProfile runs against users. It counts subscribers and subscriptions of
// the channel and flags whether viewer is one of its subscribers.
func ChannelProfile(username string, viewer primitive.ObjectID) Pipeline {
	return New(
		MatchEq("username", strings.ToLower(strings.TrimSpace(username))),
		Lookup{From: Subscriptions, LocalField: "_id", ForeignField: "channel", As: "subscribers"},
		Lookup{From: Subscriptions, LocalField: "_id", ForeignField: "subscriber", As: "subscribedTo"},
		AddFields{
			{Name: "subscribersCount", Expr: Size("subscribers")},
			{Name: "subscribedToCount", Expr: Size("subscribedTo")},
			{Name: "isSubscribed", Expr: IsIn(viewer, "subscribers.subscriber")},
		},
		Project(
			Include("username"),
			Include("email"),
			Include("fullName"),
			Include("avatar"),
			Include("coverImage"),
			Include("subscribersCount"),
			Include("subscribedToCount"),
			Include("isSubscribed"),
			Include("createdAt"),
		),
	)
}

func tweetWithOwner() []Stage {
	return []Stage{
		Lookup{From: Users, LocalField: "owner", ForeignField: "_id", As: "owner"},
		Unwind{Path: "owner"},
		insertionOrder,
		Project(
			Include("_id"),
			Include("content"),
			Include("createdAt"),
			Include("updatedAt"),
			Nest("owner", Include("fullName"), Include("avatar")),
		),
	}
}

// UserTweets runs against tweets, restricted to one owner.
func UserTweets(owner primitive.ObjectID) Pipeline {
	return New(MatchEq("owner", owner)).Then(tweetWithOwner()...)
}

// AllTweets runs against tweets.
func AllTweets() Pipeline {
	return New(tweetWithOwner()...)
}

func playlistTotals() AddFields {
	return AddFields{
		{Name: "totalVideos", Expr: Size("videos")},
		{Name: "totalViews", Expr: Sum("videos.views")},
	}
}

// PlaylistWithVideos runs against playlists and joins videos and owner.
func PlaylistWithVideos(id primitive.ObjectID) Pipeline {
	totals := playlistTotals()
	return New(
		MatchEq("_id", id),
		Lookup{From: Videos, LocalField: "videos", ForeignField: "_id", As: "videos"},
		Lookup{From: Users, LocalField: "owner", ForeignField: "_id", As: "owner"},
		append(totals, Field{Name: "owner", Expr: First("owner")}),
		Project(
			Include("name"),
			Include("description"),
			Include("createdAt"),
			Include("updatedAt"),
			Include("totalVideos"),
			Include("totalViews"),
			Nest("videos",
				Include("_id"),
				Include("videoFile"),
				Include("thumbnail"),
				Include("title"),
				Include("description"),
				Include("duration"),
				Include("createdAt"),
				Include("views"),
			),
			Nest("owner",
				Include("_id"),
				Include("username"),
				Include("fullName"),
				Include("avatar"),
			),
		),
	)
}

// UserPlaylists runs against playlists and summarises every playlist of owner.
func UserPlaylists(owner primitive.ObjectID) Pipeline {
	return New(
		MatchEq("owner", owner),
		Lookup{From: Videos, LocalField: "videos", ForeignField: "_id", As: "videos"},
		playlistTotals(),
		insertionOrder,
		Project(
			Include("_id"),
			Include("name"),
			Include("description"),
			Include("totalVideos"),
			Include("totalViews"),
			Include("updatedAt"),
		),
	)
}

func ownerCard() Projection {
	return Project(Include("username"), Include("fullName"), Include("avatar"))
}

// WatchHistory runs against users. Joined videos land in watchedVideos, each with
// its owner flattened; watchHistory keeps the ordered ids.
func WatchHistory(user primitive.ObjectID) Pipeline {
	return New(
		MatchEq("_id", user),
		Lookup{
			From:         Videos,
			LocalField:   "watchHistory",
			ForeignField: "_id",
			As:           "watchedVideos",
			Pipeline: New(
				Lookup{From: Users, LocalField: "owner", ForeignField: "_id", As: "owner", Pipeline: New(ownerCard())},
				AddFields{{Name: "owner", Expr: First("owner")}},
			),
		},
		Project(Include("watchHistory"), Include("watchedVideos")),
	)
}

func subscriptionEdge(matchField, joinField string, id primitive.ObjectID) Pipeline {
	return New(
		MatchEq(matchField, id),
		Lookup{From: Users, LocalField: joinField, ForeignField: "_id", As: joinField, Pipeline: New(ownerCard())},
		Unwind{Path: joinField},
		insertionOrder,
		Project(Include(joinField)),
	)
}

// ChannelSubscribers runs against subscriptions and yields {subscriber: card}.
func ChannelSubscribers(channel primitive.ObjectID) Pipeline {
	return subscriptionEdge("channel", "subscriber", channel)
}

// SubscribedChannels runs against subscriptions and yields {channel: card}.
func SubscribedChannels(subscriber primitive.ObjectID) Pipeline {
	return subscriptionEdge("subscriber", "channel", subscriber)
}
