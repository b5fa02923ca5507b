package handlers

import (
	"net/http"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

type SubscriptionStatusResponse struct {
	Subscribed bool `json:"subscribed"`
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriber, err := currentUser(r)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	channel, err := pathID(r, "channelId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	subscribed, err := h.subscriptionService.Toggle(ctx, subscriber, channel)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	response.JSON(ctx, w, http.StatusOK, SubscriptionStatusResponse{Subscribed: subscribed}, message)
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	channel, err := pathID(r, "channelId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	subscribers, err := h.subscriptionService.Subscribers(ctx, channel)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, subscribers, "subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriber, err := pathID(r, "subscriberId")
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	channels, err := h.subscriptionService.SubscribedChannels(ctx, subscriber)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}
	response.JSON(ctx, w, http.StatusOK, channels, "subscribed channels fetched successfully")
}
