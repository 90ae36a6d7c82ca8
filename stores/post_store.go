package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openscribe/blogapi/models"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 10

// ListFilter narrows a listing. Zero-valued dimensions are unfiltered.
// Author is the canonical hex form of a user id.
type ListFilter struct {
	Category string
	Author   string
}

// SortSpec is the compound listing sort: createdAt primary, title secondary.
// Directions use the store's native 1 (ascending) / -1 (descending).
type SortSpec struct {
	CreatedAt int
	Title     int
}

// SortDirection maps a query flag to a sort direction, defaulting to
// descending for anything other than "asc".
func SortDirection(flag string) int {
	if flag == "asc" {
		return 1
	}
	return -1
}

// PostStore is the post store contract. List and GetByID join each post with
// its author's public identity; the password hash never leaves the store.
type PostStore interface {
	List(ctx context.Context, filter ListFilter, page int, sort SortSpec) ([]models.PostWithAuthor, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error)
	Create(ctx context.Context, title, content string, category models.Category, author primitive.ObjectID) (*models.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, title, content string) (*models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// MongoPostStore persists posts in the "posts" collection.
type MongoPostStore struct {
	col *mongo.Collection
}

// NewPostStore creates a post store backed by the given database.
func NewPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{col: db.Collection("posts")}
}

// clampPage keeps the skip non-negative for absent or out-of-range pages.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// buildMatch translates a ListFilter into a $match document. Only explicitly
// supplied dimensions appear in the document.
func buildMatch(filter ListFilter) (bson.M, error) {
	match := bson.M{}
	if filter.Category != "" {
		match["category"] = filter.Category
	}
	if filter.Author != "" {
		oid, err := primitive.ObjectIDFromHex(filter.Author)
		if err != nil {
			return nil, fmt.Errorf("invalid author id %q: %w", filter.Author, err)
		}
		match["author"] = oid
	}
	return match, nil
}

// buildListPipeline assembles the listing aggregation. Sorting happens before
// skip/limit so consecutive pages of the same query never overlap or leave
// gaps, and the author join projects only public profile fields.
func buildListPipeline(match bson.M, page int, sort SortSpec) mongo.Pipeline {
	page = clampPage(page)
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: sort.CreatedAt},
			{Key: "title", Value: sort.Title},
		}}},
		{{Key: "$skip", Value: int64((page - 1) * PageSize)}},
		{{Key: "$limit", Value: int64(PageSize)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "category", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "author", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "username", Value: 1},
				{Key: "avatar", Value: 1},
			}},
		}}},
	}
}

// List returns one page of posts matching filter in the requested order,
// together with the total match count ignoring pagination.
func (s *MongoPostStore) List(ctx context.Context, filter ListFilter, page int, sort SortSpec) ([]models.PostWithAuthor, int64, error) {
	match, err := buildMatch(filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Aggregate(ctx, buildListPipeline(match, page, sort))
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.PostWithAuthor{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("decode posts: %w", err)
	}

	count, err := s.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	return posts, count, nil
}

// GetByID returns one post joined with its author, or models.ErrNotFound.
func (s *MongoPostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: int64(1)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "category", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "author", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "username", Value: 1},
				{Key: "avatar", Value: 1},
			}},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("get post: %w", err)
		}
		return nil, models.ErrNotFound
	}

	var post models.PostWithAuthor
	if err := cursor.Decode(&post); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	return &post, nil
}

// Create inserts a new post with both timestamps set to now.
func (s *MongoPostStore) Create(ctx context.Context, title, content string, category models.Category, author primitive.ObjectID) (*models.Post, error) {
	now := time.Now().UTC()
	post := models.Post{
		Title:     title,
		Content:   content,
		Category:  category,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.col.InsertOne(ctx, &post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return &post, nil
}

// Update mutates title and content only, refreshing updated_at, and returns
// the post as persisted. Category and author stay untouched.
func (s *MongoPostStore) Update(ctx context.Context, id primitive.ObjectID, title, content string) (*models.Post, error) {
	update := bson.M{"$set": bson.M{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC(),
	}}

	var post models.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

// DeleteByID removes the post, reporting models.ErrNotFound when no document
// matched.
func (s *MongoPostStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
