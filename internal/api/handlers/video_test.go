package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PublishStatus struct {
	IsPublished bool `json:"isPublished"`
}

func publishVideo(t *testing.T, ts *testutil.TestServer, token string) domain.Video {
	t.Helper()
	req := testutil.CreateMultipartRequest(t, http.MethodPost, ts.APIURL("/videos/publish"),
		map[string]string{"title": "My clip", "description": "a short clip"},
		[]testutil.FileField{{Name: "videoFile", Filename: "clip.mp4", Content: "mp4-bytes"}},
		token)
	resp := testutil.Do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return testutil.DecodeData[domain.Video](t, resp)
}

func TestVideoHandler_Publish(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	video := publishVideo(t, ts, token)
	assert.Equal(t, "My clip", video.Title)
	assert.True(t, video.IsPublished)
	assert.Equal(t, 42.0, video.Duration)
	assert.NotEmpty(t, video.VideoFile)
	assert.NotEmpty(t, video.Thumbnail)

	req := testutil.CreateMultipartRequest(t, http.MethodPost, ts.APIURL("/videos/publish"),
		map[string]string{"title": "No file", "description": "missing"}, nil, token)
	testutil.AssertErrorResponse(t, testutil.Do(t, req), http.StatusBadRequest, "video file is required")
}

func TestVideoHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, viewerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	video := publishVideo(t, ts, ownerToken)
	videoURL := ts.APIURL("/videos/" + video.ID.Hex())

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, videoURL, nil, viewerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	fetched := testutil.DecodeData[domain.Video](t, resp)
	assert.Equal(t, int64(1), fetched.Views)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/users/watch-history"), nil, viewerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	history := testutil.DecodeData[[]domain.WatchedVideo](t, resp)
	require.Len(t, history, 1)
	assert.Equal(t, video.ID, history[0].ID)
	require.NotNil(t, history[0].Owner)
	assert.Equal(t, owner.Username, history[0].Owner.Username)

	req := testutil.CreateMultipartRequest(t, http.MethodPatch, videoURL,
		map[string]string{"title": "Stolen", "description": "nope"}, nil, viewerToken)
	testutil.AssertErrorResponse(t, testutil.Do(t, req), http.StatusForbidden, "not allowed")

	req = testutil.CreateMultipartRequest(t, http.MethodPatch, videoURL,
		map[string]string{"title": "Renamed", "description": "better"},
		[]testutil.FileField{{Name: "thumbnail", Filename: "thumb.png", Content: "png"}}, ownerToken)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	updated := testutil.DecodeData[domain.Video](t, resp)
	assert.Equal(t, "Renamed", updated.Title)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPatch, videoURL+"/toggle-publish", nil, ownerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	assert.False(t, testutil.DecodeData[PublishStatus](t, resp).IsPublished)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, videoURL, nil, viewerToken))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "video not found")

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/videos/user/"+owner.ID.Hex()), nil, viewerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	assert.Empty(t, testutil.DecodeData[[]domain.Video](t, resp))

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/videos/user/"+owner.ID.Hex()), nil, ownerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	assert.Len(t, testutil.DecodeData[[]domain.Video](t, resp), 1)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, videoURL, nil, viewerToken))
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "not allowed")

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, videoURL, nil, ownerToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, videoURL, nil, ownerToken))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "video not found")
}

func TestVideoHandler_InvalidID(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/videos/not-an-id"), nil, token))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid videoId")
}
