package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with unique defaults
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: "user_" + suffix,
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		fullName: "Test User " + suffix,
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build stores the user and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, users repository.UserRepository) (*domain.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		Email:        b.email,
		FullName:     b.fullName,
		PasswordHash: string(hashed),
		Avatar:       "https://media.test/avatar.png",
	}

	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates the user and logs in through the API, returning the access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.Repos.User)

	body, _ := json.Marshal(map[string]string{
		"username": user.Username,
		"password": password,
	})
	resp, err := http.Post(ts.APIURL("/users/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var env Envelope[LoginData]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return user, env.Data.AccessToken
}

// VideoBuilder creates test videos with a builder pattern
type VideoBuilder struct {
	owner       primitive.ObjectID
	title       string
	views       int64
	isPublished bool
}

func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		title:       "video " + uuid.New().String()[:8],
		isPublished: true,
	}
}

func (b *VideoBuilder) WithOwner(owner primitive.ObjectID) *VideoBuilder {
	b.owner = owner
	return b
}

func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

func (b *VideoBuilder) Unpublished() *VideoBuilder {
	b.isPublished = false
	return b
}

func (b *VideoBuilder) Build(t *testing.T, videos repository.VideoRepository) *domain.Video {
	t.Helper()

	key := uuid.NewString()
	video := &domain.Video{
		Title:             b.title,
		Description:       "description of " + b.title,
		VideoFile:         "http://media.test/" + key + ".mp4",
		VideoFilePublicID: key + ".mp4",
		Thumbnail:         "https://media.test/" + key + ".mp4",
		Duration:          12.5,
		Views:             b.views,
		IsPublished:       b.isPublished,
		Owner:             b.owner,
	}

	if err := videos.Create(context.Background(), video); err != nil {
		t.Fatalf("failed to create video: %v", err)
	}
	return video
}

// Envelope matches the API response body
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// LoginData matches the login response payload
type LoginData struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// CreateAuthenticatedRequest creates an HTTP request with a JSON body and bearer token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// FileField is one file part of a multipart form
type FileField struct {
	Name     string
	Filename string
	Content  string
}

// CreateMultipartRequest builds a multipart/form-data request with fields and files
func CreateMultipartRequest(t *testing.T, method, url string, fields map[string]string, files []FileField, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Name, f.Filename)
		if err != nil {
			t.Fatalf("failed to create file part %s: %v", f.Name, err)
		}
		if _, err := io.WriteString(part, f.Content); err != nil {
			t.Fatalf("failed to write file part %s: %v", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Do sends req with the default client and fails the test on transport errors
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
