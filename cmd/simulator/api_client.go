package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Response types matching backend

type envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Video struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Views    int64   `json:"views"`
}

type Playlist struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type ChannelProfile struct {
	Username          string `json:"username"`
	SubscribersCount  int    `json:"subscribersCount"`
	SubscribedToCount int    `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

type filePart struct {
	field string
	name  string
	data  []byte
}

// RegisterUser creates a new account and logs it in
func (c *APIClient) RegisterUser(baseName string, avatar []byte) (*User, *TokenPair, error) {
	username := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)
	password := "testpassword123"

	fields := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"fullName": baseName,
		"password": password,
	}
	resp, err := c.multipart(http.MethodPost, "/users/register", fields, []filePart{{field: "avatar", name: "avatar.png", data: avatar}}, "")
	if err != nil {
		return nil, nil, fmt.Errorf("register request failed: %w", err)
	}
	if _, err := decode[User](resp, http.StatusCreated); err != nil {
		return nil, nil, fmt.Errorf("register failed: %w", err)
	}

	return c.Login(username, password)
}

func (c *APIClient) Login(username, password string) (*User, *TokenPair, error) {
	resp, err := c.send(http.MethodPost, "/users/login", map[string]string{"username": username, "password": password}, "")
	if err != nil {
		return nil, nil, fmt.Errorf("login request failed: %w", err)
	}
	auth, err := decode[AuthResponse](resp, http.StatusOK)
	if err != nil {
		return nil, nil, fmt.Errorf("login failed: %w", err)
	}
	return &auth.User, &TokenPair{AccessToken: auth.AccessToken, RefreshToken: auth.RefreshToken}, nil
}

func (c *APIClient) Refresh(refreshToken string) (*TokenPair, error) {
	resp, err := c.send(http.MethodPost, "/users/refresh-token", map[string]string{"refreshToken": refreshToken}, "")
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return decode[TokenPair](resp, http.StatusOK)
}

// PublishVideo uploads videoPath with a title
func (c *APIClient) PublishVideo(token, title, videoPath string) (*Video, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("read video: %w", err)
	}
	fields := map[string]string{"title": title, "description": "seeded video " + title}
	resp, err := c.multipart(http.MethodPost, "/videos/publish", fields, []filePart{{field: "videoFile", name: filepath.Base(videoPath), data: data}}, token)
	if err != nil {
		return nil, fmt.Errorf("publish request failed: %w", err)
	}
	return decode[Video](resp, http.StatusCreated)
}

func (c *APIClient) WatchVideo(token, videoID string) (*Video, error) {
	resp, err := c.send(http.MethodGet, "/videos/"+videoID, nil, token)
	if err != nil {
		return nil, fmt.Errorf("get video request failed: %w", err)
	}
	return decode[Video](resp, http.StatusOK)
}

func (c *APIClient) CreatePlaylist(token, name string) (*Playlist, error) {
	resp, err := c.send(http.MethodPost, "/playlists", map[string]string{"name": name, "description": "seeded"}, token)
	if err != nil {
		return nil, fmt.Errorf("create playlist request failed: %w", err)
	}
	return decode[Playlist](resp, http.StatusCreated)
}

func (c *APIClient) AddToPlaylist(token, playlistID, videoID string) error {
	resp, err := c.send(http.MethodPatch, "/playlists/"+playlistID+"/videos/"+videoID, nil, token)
	if err != nil {
		return fmt.Errorf("add to playlist request failed: %w", err)
	}
	_, err = decode[Playlist](resp, http.StatusOK)
	return err
}

func (c *APIClient) Tweet(token, content string) error {
	resp, err := c.send(http.MethodPost, "/tweets", map[string]string{"content": content}, token)
	if err != nil {
		return fmt.Errorf("tweet request failed: %w", err)
	}
	_, err = decode[json.RawMessage](resp, http.StatusCreated)
	return err
}

// Subscribe toggles the caller's subscription to channelID
func (c *APIClient) Subscribe(token, channelID string) error {
	resp, err := c.send(http.MethodPost, "/subscriptions/c/"+channelID, nil, token)
	if err != nil {
		return fmt.Errorf("subscribe request failed: %w", err)
	}
	_, err = decode[json.RawMessage](resp, http.StatusOK)
	return err
}

func (c *APIClient) Channel(token, username string) (*ChannelProfile, error) {
	resp, err := c.send(http.MethodGet, "/users/channel/"+username, nil, token)
	if err != nil {
		return nil, fmt.Errorf("channel request failed: %w", err)
	}
	return decode[ChannelProfile](resp, http.StatusOK)
}

func decode[T any](resp *http.Response, want int) (*T, error) {
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env.Data, nil
}

func (c *APIClient) send(method, path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *APIClient) multipart(method, path string, fields map[string]string, files []filePart, token string) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.httpClient.Do(req)
}
