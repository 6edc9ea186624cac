package dto

// --- Health ---

// HealthRequest is a request for the health endpoint.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error { return nil }

// --- Auth ---

// TokenRequest is a request for an admin bearer token.
type TokenRequest struct {
	Password string `json:"password"`
}

// Validate validates the token request fields.
func (r *TokenRequest) Validate() error {
	if r.Password == "" {
		return MissingField("password")
	}
	return nil
}

// --- Categories ---

// ListCategoriesRequest is a request to list all categories.
type ListCategoriesRequest struct{}

// Validate is a no-op for ListCategoriesRequest.
func (r *ListCategoriesRequest) Validate() error { return nil }

// CreateCategoryRequest is a request to create a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Slug        string `json:"slug"`
	Code        string `json:"code"`
}

// Validate validates the create category request fields.
func (r *CreateCategoryRequest) Validate() error {
	if r.Code == "" {
		return MissingField("code")
	}
	if r.Name == "" {
		return MissingField("name")
	}
	return nil
}

// UpdateCategoryRequest is a request to partially update a category.
type UpdateCategoryRequest struct {
	ID          string  `path:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Slug        *string `json:"slug"`
}

// Validate validates the update category request fields.
func (r *UpdateCategoryRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteCategoryRequest is a request to delete a category.
type DeleteCategoryRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete category request fields.
func (r *DeleteCategoryRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// --- Users ---

// ListUsersRequest is a request to list all users.
type ListUsersRequest struct{}

// Validate is a no-op for ListUsersRequest.
func (r *ListUsersRequest) Validate() error { return nil }

// CreateUserRequest is a request to create a user.
type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// Validate validates the create user request fields.
func (r *CreateUserRequest) Validate() error {
	if r.Name == "" {
		return MissingField("name")
	}
	if r.Email == "" {
		return MissingField("email")
	}
	if r.Role == "" {
		return MissingField("role")
	}
	return nil
}

// UpdateUserRequest is a request to partially update a user.
type UpdateUserRequest struct {
	ID     string  `path:"id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
	Role   *string `json:"role"`
}

// Validate validates the update user request fields.
func (r *UpdateUserRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteUserRequest is a request to delete a user.
type DeleteUserRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete user request fields.
func (r *DeleteUserRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// --- Articles ---

// ListArticlesRequest is a request to list articles with filters and
// pagination.
type ListArticlesRequest struct {
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
	CategoryID string `query:"categoryId"`
	AuthorID   string `query:"authorId"`
	Status     string `query:"status"`
	Search     string `query:"search"`
}

// Validate validates the list articles request fields.
func (r *ListArticlesRequest) Validate() error {
	if r.Limit < 0 {
		return InvalidField("limit", "must not be negative")
	}
	if r.Offset < 0 {
		return InvalidField("offset", "must not be negative")
	}
	return nil
}

// GetArticleRequest is a request to get one article.
type GetArticleRequest struct {
	ID string `path:"id"`
}

// Validate validates the get article request fields.
func (r *GetArticleRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// CreateArticleRequest is a request to create an article.
type CreateArticleRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID string   `json:"categoryId"`
	AuthorID   string   `json:"authorId"`
	Status     string   `json:"status"`
	Tags       []string `json:"tags"`
}

// Validate validates the create article request fields.
func (r *CreateArticleRequest) Validate() error {
	if r.Title == "" {
		return MissingField("title")
	}
	if r.Content == "" {
		return MissingField("content")
	}
	if r.CategoryID == "" {
		return MissingField("categoryId")
	}
	return nil
}

// UpdateArticleRequest is a request to partially update an article.
type UpdateArticleRequest struct {
	ID         string   `path:"id"`
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	CategoryID *string  `json:"categoryId"`
	AuthorID   *string  `json:"authorId"`
	Status     *string  `json:"status"`
	Tags       []string `json:"tags"`
}

// Validate validates the update article request fields.
func (r *UpdateArticleRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteArticleRequest is a request to delete an article.
type DeleteArticleRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete article request fields.
func (r *DeleteArticleRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// --- Comments ---

// ListCommentsRequest is a request for an article's comment tree.
type ListCommentsRequest struct {
	NewsID string `path:"id"`
}

// Validate validates the list comments request fields.
func (r *ListCommentsRequest) Validate() error {
	if r.NewsID == "" {
		return MissingField("id")
	}
	return nil
}

// CreateCommentRequest is a request to create a comment on an article.
type CreateCommentRequest struct {
	NewsID   string `path:"id"`
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// Validate validates the create comment request fields.
func (r *CreateCommentRequest) Validate() error {
	if r.NewsID == "" {
		return MissingField("id")
	}
	if r.Content == "" {
		return MissingField("content")
	}
	return nil
}

// DeleteCommentRequest is a request to delete a comment.
type DeleteCommentRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete comment request fields.
func (r *DeleteCommentRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// --- Stats / schema / history ---

// GetStatsRequest is a request for dashboard statistics.
type GetStatsRequest struct{}

// Validate is a no-op for GetStatsRequest.
func (r *GetStatsRequest) Validate() error { return nil }

// GetSchemaRequest is a request for the API JSON Schemas.
type GetSchemaRequest struct{}

// Validate is a no-op for GetSchemaRequest.
func (r *GetSchemaRequest) Validate() error { return nil }

// GetHistoryRequest is a request for the store commit history.
type GetHistoryRequest struct {
	N int `query:"n"`
}

// Validate validates the history request fields.
func (r *GetHistoryRequest) Validate() error {
	if r.N < 0 {
		return InvalidField("n", "must not be negative")
	}
	return nil
}

// --- Push subscriptions ---

// SubscribeRequest is a request to register a web push subscription.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// Validate validates the subscribe request fields.
func (r *SubscribeRequest) Validate() error {
	if r.Endpoint == "" {
		return MissingField("endpoint")
	}
	if r.P256dh == "" {
		return MissingField("p256dh")
	}
	if r.Auth == "" {
		return MissingField("auth")
	}
	return nil
}

// UnsubscribeRequest is a request to remove a web push subscription.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// Validate validates the unsubscribe request fields.
func (r *UnsubscribeRequest) Validate() error {
	if r.Endpoint == "" {
		return MissingField("endpoint")
	}
	return nil
}
