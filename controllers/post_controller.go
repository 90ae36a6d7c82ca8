package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openscribe/blogapi/middleware"
	"github.com/openscribe/blogapi/models"
	"github.com/openscribe/blogapi/stores"
	"github.com/openscribe/blogapi/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts stores.PostStore
}

// NewPostController creates a PostController backed by the given store.
func NewPostController(posts stores.PostStore) *PostController {
	return &PostController{posts: posts}
}

// List returns one page of posts joined with author identities, plus the
// total match count so callers can compute page counts. The store filter is
// built only from explicitly supplied query dimensions.
func (p *PostController) List(ctx *gin.Context) {
	var q models.ListPostsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		utils.BindingError(ctx, err)
		return
	}

	filter := stores.ListFilter{Category: q.Category, Author: q.Author}
	sort := stores.SortSpec{
		CreatedAt: stores.SortDirection(q.Date),
		Title:     stores.SortDirection(q.Title),
	}

	posts, count, err := p.posts.List(ctx.Request.Context(), filter, q.Page, sort)
	if err != nil {
		internalError(ctx, "list posts", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts, "count": count})
}

// Create adds a new post. The author is always the authenticated identity,
// never client input.
func (p *PostController) Create(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindingError(ctx, err)
		return
	}

	author, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(),
		strings.TrimSpace(req.Title),
		utils.Sanitize(req.Content),
		models.Category(req.Category),
		author,
	)
	if err != nil {
		internalError(ctx, "create post", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// Get returns a single post with its author's public identity.
func (p *PostController) Get(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := p.posts.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		internalError(ctx, "get post", err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// Update lets the author change a post's title and content. Category and
// author are immutable after creation.
func (p *PostController) Update(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindingError(ctx, err)
		return
	}

	rc := ctx.Request.Context()

	existing, err := p.posts.GetByID(rc, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		internalError(ctx, "update: load post", err)
		return
	}

	if !ownedBy(existing, identity) {
		utils.Error(ctx, http.StatusForbidden, "You can only update your own posts")
		return
	}

	post, err := p.posts.Update(rc, id,
		strings.TrimSpace(req.Title),
		utils.Sanitize(req.Content),
	)
	if err != nil {
		// The post can vanish between the ownership check and the write; the
		// loser of that race sees not-found, not a crash.
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		internalError(ctx, "update post", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete lets the author remove a post.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rc := ctx.Request.Context()

	existing, err := p.posts.GetByID(rc, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		internalError(ctx, "delete: load post", err)
		return
	}

	if !ownedBy(existing, identity) {
		utils.Error(ctx, http.StatusForbidden, "You can only delete your own posts")
		return
	}

	if err := p.posts.DeleteByID(rc, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		internalError(ctx, "delete post", err)
		return
	}

	utils.Message(ctx, http.StatusOK, "Post deleted successfully")
}

// ownedBy compares ownership on canonical hex id strings, never on driver
// types whose equality semantics differ.
func ownedBy(post *models.PostWithAuthor, identity models.Identity) bool {
	return post.Author.ID.Hex() == identity.ID
}

// parsePostID validates the :id path parameter, writing the validation error
// itself when the id is not a well-formed document id.
func parsePostID(ctx *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		utils.FieldErrors(ctx, map[string]string{"id": "Invalid post id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
