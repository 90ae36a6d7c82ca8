package controllers_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openscribe/blogapi/models"
	"github.com/openscribe/blogapi/stores"
)

// fakeUserStore is an in-memory stores.UserStore for handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, username, email, passwordHash, avatar string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, models.ErrDuplicate
		}
	}
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		CreatedAt:    time.Now().UTC(),
	}
	f.users = append(f.users, user)
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) profileByID(id primitive.ObjectID) models.AuthorProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return models.AuthorProfile{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
		}
	}
	return models.AuthorProfile{ID: id}
}

// fakePostStore is an in-memory stores.PostStore mirroring the aggregation
// semantics: filter, compound sort, fixed-size pages, author join.
type fakePostStore struct {
	mu    sync.Mutex
	users *fakeUserStore
	posts []*models.Post
}

func newFakePostStore(users *fakeUserStore) *fakePostStore {
	return &fakePostStore{users: users}
}

func (f *fakePostStore) withAuthor(p *models.Post) models.PostWithAuthor {
	return models.PostWithAuthor{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Author:    f.users.profileByID(p.Author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (f *fakePostStore) List(_ context.Context, filter stores.ListFilter, page int, spec stores.SortSpec) ([]models.PostWithAuthor, int64, error) {
	var author primitive.ObjectID
	if filter.Author != "" {
		oid, err := primitive.ObjectIDFromHex(filter.Author)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid author id %q: %w", filter.Author, err)
		}
		author = oid
	}

	f.mu.Lock()
	filtered := []*models.Post{}
	for _, p := range f.posts {
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		if filter.Author != "" && p.Author != author {
			continue
		}
		filtered = append(filtered, p)
	}
	f.mu.Unlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if spec.CreatedAt == 1 {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Title != b.Title {
			if spec.Title == 1 {
				return a.Title < b.Title
			}
			return a.Title > b.Title
		}
		return false
	})

	if page < 1 {
		page = 1
	}
	start := (page - 1) * stores.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + stores.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	out := []models.PostWithAuthor{}
	for _, p := range filtered[start:end] {
		out = append(out, f.withAuthor(p))
	}
	return out, int64(len(filtered)), nil
}

func (f *fakePostStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			joined := f.withAuthor(p)
			return &joined, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakePostStore) Create(_ context.Context, title, content string, category models.Category, author primitive.ObjectID) (*models.Post, error) {
	now := time.Now().UTC()
	post := &models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		Category:  category,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.mu.Lock()
	f.posts = append(f.posts, post)
	f.mu.Unlock()
	clone := *post
	return &clone, nil
}

func (f *fakePostStore) Update(_ context.Context, id primitive.ObjectID, title, content string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			p.Title = title
			p.Content = content
			p.UpdatedAt = time.Now().UTC()
			clone := *p
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakePostStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// seed inserts a post with caller-controlled timestamps for pagination and
// ordering tests.
func (f *fakePostStore) seed(title string, category models.Category, author primitive.ObjectID, createdAt time.Time) models.Post {
	post := &models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   "seeded content",
		Category:  category,
		Author:    author,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.mu.Lock()
	f.posts = append(f.posts, post)
	f.mu.Unlock()
	return *post
}
