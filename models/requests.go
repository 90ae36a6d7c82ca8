package models

// Request payloads with their declarative validation rules. The custom tags
// (usernamefmt, strongpwd, posttitle, blogcategory, objectid, sortdir) are
// registered in utils.RegisterValidators; every failing field is collected
// into a single field->message map before any handler logic runs.

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,usernamefmt"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreatePostRequest is the body of POST /posts. The author is never part of
// the payload; it comes from the authenticated identity.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,posttitle"`
	Content  string `json:"content" binding:"required,max=1000"`
	Category string `json:"category" binding:"required,blogcategory"`
}

// UpdatePostRequest is the body of PUT /posts/:id. Category and author are
// immutable after creation and deliberately absent here.
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,posttitle"`
	Content string `json:"content" binding:"required,max=1000"`
}

// ListPostsQuery is the query string of GET /posts.
type ListPostsQuery struct {
	Page     int    `form:"page" binding:"required,min=1"`
	Date     string `form:"date" binding:"omitempty,sortdir"`
	Title    string `form:"title" binding:"omitempty,sortdir"`
	Author   string `form:"author" binding:"omitempty,objectid"`
	Category string `form:"category" binding:"omitempty,blogcategory"`
}
