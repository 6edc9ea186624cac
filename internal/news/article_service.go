package news

import (
	"sort"
	"strings"
	"time"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

// ArticleService handles article CRUD over the news collection.
type ArticleService struct {
	store *Store
}

// NewArticleService creates a new article service.
func NewArticleService(store *Store) *ArticleService {
	return &ArticleService{store: store}
}

// ListArticlesParams filter and paginate List.
type ListArticlesParams struct {
	Limit      int
	Offset     int
	CategoryID string
	AuthorID   string
	Status     string
	Search     string
}

// ListResult is a page of populated articles plus the total match count
// before pagination.
type ListResult struct {
	Articles []*Article
	Total    int
}

// List returns populated articles sorted by publishedAt (fallback
// created_at) descending. Search matches case-insensitively against title or
// content.
func (s *ArticleService) List(p ListArticlesParams) (*ListResult, error) {
	docs, err := s.store.DB.Read(CollectionNews)
	if err != nil {
		return nil, err
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(p.Search)
	var matched []*Article
	for _, d := range docs {
		a := ArticleFromDoc(d)
		if p.CategoryID != "" && a.CategoryID != p.CategoryID {
			continue
		}
		if p.AuthorID != "" && (a.AuthorID == nil || *a.AuthorID != p.AuthorID) {
			continue
		}
		if p.Status != "" && string(a.Status) != p.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Content), search) {
			continue
		}
		a.Populate(lk)
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].PublishedAt != matched[j].PublishedAt {
			return matched[i].PublishedAt > matched[j].PublishedAt
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := min(max(p.Offset, 0), total)
	end := min(offset+limit, total)
	return &ListResult{Articles: matched[offset:end], Total: total}, nil
}

// Get returns one populated article.
func (s *ArticleService) Get(id string) (*Article, error) {
	doc, err := s.store.DB.Get(CollectionNews, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Resource: "article", ID: id}
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, err
	}
	a := ArticleFromDoc(doc)
	a.Populate(lk)
	return a, nil
}

// CreateArticleParams are the inputs to Create.
type CreateArticleParams struct {
	Title      string
	Content    string
	CategoryID string
	AuthorID   string
	Status     string
	Tags       []string
}

// Create validates foreign keys and appends a new article. Nothing is
// written when a reference does not resolve.
func (s *ArticleService) Create(p CreateArticleParams) (*Article, error) {
	if p.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if p.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if p.CategoryID == "" {
		return nil, &ValidationError{Field: "categoryId"}
	}
	status := p.Status
	if status == "" {
		status = string(StatusDraft)
	}
	if Status(status) != StatusDraft && Status(status) != StatusPublished {
		return nil, &ValidationError{Field: "status", Reason: "must be draft or published"}
	}
	doc := jsonldb.NewDocument("news", "news")
	doc.Content = p.Title + "\n\n" + p.Content
	doc.Tags = p.Tags
	doc.SetMeta("title", p.Title)
	doc.SetMeta("categoryId", p.CategoryID)
	if p.AuthorID != "" {
		doc.SetMeta("authorId", p.AuthorID)
	}
	doc.SetMeta("status", status)
	if Status(status) == StatusPublished {
		doc.SetMeta("publishedAt", float64(time.Now().UnixMilli()))
	}
	doc.SetMeta(jsonldb.MetaCollection, CollectionNews)
	doc.SetForeignKeys(s.store.Registry.For(CollectionNews))
	if err := s.store.Enforcer.ValidateCreate(CollectionNews, doc); err != nil {
		return nil, err
	}
	if err := s.store.DB.Append(CollectionNews, doc); err != nil {
		return nil, err
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, err
	}
	a := ArticleFromDoc(doc)
	a.Populate(lk)
	return a, nil
}

// UpdateArticleParams are the partial fields accepted by Update.
type UpdateArticleParams struct {
	Title      *string
	Content    *string
	CategoryID *string
	AuthorID   *string
	Status     *string
	Tags       []string
}

// Update merges the provided fields. Changing a foreign key re-validates it.
// Returns the updated populated article and whether this update transitioned
// the article to published.
func (s *ArticleService) Update(id string, p UpdateArticleParams) (*Article, bool, error) {
	if p.Status != nil && Status(*p.Status) != StatusDraft && Status(*p.Status) != StatusPublished {
		return nil, false, &ValidationError{Field: "status", Reason: "must be draft or published"}
	}
	docs, err := s.store.DB.Read(CollectionNews)
	if err != nil {
		return nil, false, err
	}
	var updated *jsonldb.Document
	published := false
	for i, d := range docs {
		if d.ID != id {
			continue
		}
		updated = d.Clone()
		title := updated.MetaString("title")
		body := articleBody(updated)
		if p.Title != nil {
			title = *p.Title
			updated.SetMeta("title", title)
		}
		if p.Content != nil {
			body = *p.Content
		}
		updated.Content = title + "\n\n" + body
		if p.CategoryID != nil {
			updated.SetMeta("categoryId", *p.CategoryID)
		}
		if p.AuthorID != nil {
			updated.SetMeta("authorId", *p.AuthorID)
		}
		if p.Status != nil {
			wasPublished := updated.MetaString("status") == string(StatusPublished)
			updated.SetMeta("status", *p.Status)
			if Status(*p.Status) == StatusPublished && !wasPublished {
				updated.SetMeta("publishedAt", float64(time.Now().UnixMilli()))
				published = true
			}
		}
		if p.Tags != nil {
			updated.Tags = p.Tags
		}
		updated.Touch()
		docs[i] = updated
		break
	}
	if updated == nil {
		return nil, false, &NotFoundError{Resource: "article", ID: id}
	}
	if err := s.store.Enforcer.ValidateCreate(CollectionNews, updated); err != nil {
		return nil, false, err
	}
	if err := s.store.DB.Replace(CollectionNews, docs); err != nil {
		return nil, false, err
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, false, err
	}
	a := ArticleFromDoc(updated)
	a.Populate(lk)
	return a, published, nil
}

// Delete removes an article; its comments (and their reply chains) cascade
// in the same operation.
func (s *ArticleService) Delete(id string) error {
	err := s.store.Enforcer.Delete(CollectionNews, id)
	if err == jsonldb.ErrNotFound {
		return &NotFoundError{Resource: "article", ID: id}
	}
	return err
}
