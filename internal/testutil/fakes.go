package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/media"
	"github.com/dom/vidtube/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FakeMediaStore keeps uploads in memory and removes the local file like the real store
type FakeMediaStore struct {
	mu       sync.Mutex
	Stored   map[string][]byte
	Deleted  []string
	Duration float64
	StoreErr error
}

func NewFakeMediaStore() *FakeMediaStore {
	return &FakeMediaStore{Stored: make(map[string][]byte), Duration: 42}
}

func (f *FakeMediaStore) Store(ctx context.Context, localPath string) (media.Asset, error) {
	if localPath == "" {
		return media.Asset{}, media.ErrEmptyPath
	}
	defer os.Remove(localPath)

	if f.StoreErr != nil {
		return media.Asset{}, f.StoreErr
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return media.Asset{}, err
	}

	key := uuid.NewString() + filepath.Ext(localPath)
	f.mu.Lock()
	f.Stored[key] = data
	f.mu.Unlock()

	return media.Asset{
		URL:       "http://media.test/" + key,
		SecureURL: "https://media.test/" + key,
		PublicID:  key,
		Duration:  f.Duration,
	}, nil
}

func (f *FakeMediaStore) Delete(ctx context.Context, publicID string) (bool, error) {
	if publicID == "" {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, publicID)
	_, ok := f.Stored[publicID]
	delete(f.Stored, publicID)
	return ok, nil
}

// Has reports whether publicID is currently stored
func (f *FakeMediaStore) Has(publicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Stored[publicID]
	return ok
}

// MemoryUserRepo is a mutex-guarded in-memory UserRepository
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *MemoryUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: username or email", repository.ErrDuplicate)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) get(id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *MemoryUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemoryUserRepo) mutate(id primitive.ObjectID, fn func(*domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&u)
	r.users[id] = u
	return &u, nil
}

func (r *MemoryUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.FullName, u.Email = fullName, email })
}

func (r *MemoryUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.mutate(id, func(u *domain.User) { u.PasswordHash = hash })
	return err
}

func (r *MemoryUserRepo) SetAvatar(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.Avatar, u.AvatarPublicID = url, publicID })
}

func (r *MemoryUserRepo) SetCoverImage(ctx context.Context, id primitive.ObjectID, url, publicID string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.CoverImage, u.CoverImagePublicID = url, publicID })
}

func (r *MemoryUserRepo) PushWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error {
	_, err := r.mutate(id, func(u *domain.User) {
		history := []primitive.ObjectID{videoID}
		for _, v := range u.WatchHistory {
			if v != videoID {
				history = append(history, v)
			}
		}
		u.WatchHistory = history
	})
	return err
}

func (r *MemoryUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.mutate(id, func(u *domain.User) { u.RefreshToken = token })
	return err
}

func (r *MemoryUserRepo) SwapRefreshToken(ctx context.Context, id primitive.ObjectID, expected, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.RefreshToken != expected {
		return false, nil
	}
	u.RefreshToken = next
	r.users[id] = u
	return true, nil
}

func (r *MemoryUserRepo) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RefreshToken = ""
		r.users[id] = u
	}
	return nil
}
