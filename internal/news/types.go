// Package news implements the demo news system layered over the collection
// store: categories, users, articles and threaded comments, with foreign-key
// semantics between them.
package news

import (
	"strings"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

// Collection names used by the news system. Articles live in the "news"
// collection; "articles" is only the API-facing name.
const (
	CollectionCategories = "categories"
	CollectionUsers      = "users"
	CollectionNews       = "news"
	CollectionComments   = "comments"
)

// Role is a user's role in the news system.
type Role string

// Valid roles.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
	RoleGuest  Role = "guest"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleReader, RoleGuest:
		return true
	}
	return false
}

// Status is an article's publication status.
type Status string

// Valid statuses.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Category is the typed view over a category document.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Slug        string `json:"slug"`
	// ArticleCount is computed at read time, never stored.
	ArticleCount int `json:"articleCount"`
}

// User is the typed view over a user document.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Role   Role   `json:"role"`
}

// Article is the typed view over a news document. Category and Author are
// populated on read paths; an unresolved or nulled reference yields an
// explicit JSON null, never a missing key.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CategoryID  string    `json:"categoryId"`
	AuthorID    *string   `json:"authorId"`
	Status      Status    `json:"status"`
	PublishedAt int64     `json:"publishedAt"`
	ViewCount   int64     `json:"viewCount"`
	LikeCount   int64     `json:"likeCount"`
	Tags        []string  `json:"tags"`
	CreatedAt   int64     `json:"created_at"`
	Category    *Category `json:"category"`
	Author      *User     `json:"author"`
}

// Comment is the typed view over a comment document. Replies holds direct
// children when the comment is part of an assembled tree.
type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	NewsID    string     `json:"newsId"`
	AuthorID  *string    `json:"authorId"`
	ParentID  string     `json:"parentId,omitempty"`
	LikeCount int64      `json:"likeCount"`
	CreatedAt int64      `json:"created_at"`
	Depth     int        `json:"depth"`
	Author    *User      `json:"author"`
	Replies   []*Comment `json:"replies"`
}

// CategoryFromDoc projects a category document.
func CategoryFromDoc(d *jsonldb.Document) *Category {
	return &Category{
		ID:          d.ID,
		Name:        d.MetaString("name"),
		Description: d.MetaString("description"),
		Icon:        d.MetaString("icon"),
		Slug:        d.MetaString("slug"),
	}
}

// UserFromDoc projects a user document.
func UserFromDoc(d *jsonldb.Document) *User {
	return &User{
		ID:     d.ID,
		Name:   d.MetaString("name"),
		Email:  d.MetaString("email"),
		Avatar: d.MetaString("avatar"),
		Role:   Role(d.MetaString("role")),
	}
}

// ArticleFromDoc projects a news document. Missing fields default
// deterministically: status draft, counters zero, publishedAt falls back to
// created_at.
func ArticleFromDoc(d *jsonldb.Document) *Article {
	a := &Article{
		ID:         d.ID,
		Title:      d.MetaString("title"),
		Content:    articleBody(d),
		CategoryID: d.MetaString("categoryId"),
		Status:     Status(d.MetaString("status")),
		ViewCount:  d.MetaInt("viewCount"),
		LikeCount:  d.MetaInt("likeCount"),
		Tags:       d.Tags,
		CreatedAt:  d.CreatedAt,
	}
	if a.Title == "" {
		a.Title = articleTitle(d)
	}
	if id := d.MetaString("authorId"); id != "" {
		a.AuthorID = &id
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.PublishedAt = d.MetaInt("publishedAt"); a.PublishedAt == 0 {
		a.PublishedAt = d.CreatedAt
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a
}

// Article content is stored as "title\n\nbody" in the document payload.

func articleTitle(d *jsonldb.Document) string {
	title, _, _ := strings.Cut(d.Content, "\n\n")
	return title
}

func articleBody(d *jsonldb.Document) string {
	_, body, found := strings.Cut(d.Content, "\n\n")
	if !found {
		return d.Content
	}
	return body
}

// CommentFromDoc projects a comment document.
func CommentFromDoc(d *jsonldb.Document) *Comment {
	c := &Comment{
		ID:        d.ID,
		Content:   d.Content,
		NewsID:    d.MetaString("newsId"),
		ParentID:  d.MetaString("parentId"),
		LikeCount: d.MetaInt("likeCount"),
		CreatedAt: d.CreatedAt,
		Depth:     d.Depth,
	}
	if id := d.MetaString("authorId"); id != "" {
		c.AuthorID = &id
	}
	return c
}

// NewRegistry builds the fixed foreign-key policy table for the news system.
func NewRegistry() *jsonldb.Registry {
	r := jsonldb.NewRegistry()
	r.Declare(CollectionNews, "categoryId", jsonldb.ForeignKey{TargetCollection: CollectionCategories, OnDelete: jsonldb.PolicyRestrict})
	r.Declare(CollectionNews, "authorId", jsonldb.ForeignKey{TargetCollection: CollectionUsers, OnDelete: jsonldb.PolicySetNull})
	r.Declare(CollectionComments, "newsId", jsonldb.ForeignKey{TargetCollection: CollectionNews, OnDelete: jsonldb.PolicyCascade})
	r.Declare(CollectionComments, "authorId", jsonldb.ForeignKey{TargetCollection: CollectionUsers, OnDelete: jsonldb.PolicySetNull})
	r.Declare(CollectionComments, "parentId", jsonldb.ForeignKey{TargetCollection: CollectionComments, OnDelete: jsonldb.PolicyCascade})
	return r
}

// Store bundles the collection store with the news system's foreign-key
// registry and enforcer. Services share one Store.
type Store struct {
	DB       *jsonldb.Store
	Registry *jsonldb.Registry
	Enforcer *jsonldb.Enforcer
}

// NewStore opens a news store over the given root directory.
func NewStore(root string) (*Store, error) {
	db, err := jsonldb.NewStore(root)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	return &Store{
		DB:       db,
		Registry: registry,
		Enforcer: jsonldb.NewEnforcer(db, registry),
	}, nil
}
