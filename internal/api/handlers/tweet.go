package handlers

import (
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/service"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content"`
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req TweetRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	tweet, err := h.tweetService.Create(ctx, owner, req.Content)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusCreated, tweet, "tweet created successfully")
}

func (h *TweetHandler) UserTweets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	tweets, err := h.tweetService.UserTweets(ctx, owner)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, tweets, "tweets fetched successfully")
}

func (h *TweetHandler) All(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweets, err := h.tweetService.AllTweets(ctx)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, tweets, "all tweets fetched successfully")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	id, err := pathID(r, "tweetId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	var req TweetRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(ctx, w, err)
		return
	}

	tweet, err := h.tweetService.Update(ctx, id, caller, req.Content)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, tweet, "tweet updated successfully")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	id, err := pathID(r, "tweetId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	if err := h.tweetService.Delete(ctx, id, caller); err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, struct{}{}, "tweet deleted successfully")
}
