package news

import (
	"errors"
	"testing"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

// addArticleDoc writes a news document directly, bypassing the service, so
// tests control publishedAt and ordering exactly.
func addArticleDoc(t *testing.T, store *Store, id, title, status string, publishedAt int64, meta map[string]any) {
	t.Helper()
	doc := jsonldb.NewDocument("news", "news")
	doc.ID = id
	doc.Content = title + "\n\nbody of " + title
	doc.SetMeta("title", title)
	doc.SetMeta("status", status)
	if publishedAt != 0 {
		doc.SetMeta("publishedAt", float64(publishedAt))
	}
	for k, v := range meta {
		doc.SetMeta(k, v)
	}
	doc.SetMeta(jsonldb.MetaCollection, CollectionNews)
	if err := store.DB.Append(CollectionNews, doc); err != nil {
		t.Fatalf("append article %q: %v", id, err)
	}
}

func TestArticleCreateForeignKeyValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewArticleService(store)

	var fkErr *jsonldb.ForeignKeyError
	_, err := svc.Create(CreateArticleParams{Title: "T", Content: "B", CategoryID: "cat_ghost"})
	if !errors.As(err, &fkErr) {
		t.Fatalf("err = %v, want *jsonldb.ForeignKeyError", err)
	}
	if fkErr.Field != "categoryId" || fkErr.TargetCollection != CollectionCategories {
		t.Errorf("ForeignKeyError = %+v", fkErr)
	}

	// Nothing was persisted.
	docs, err := store.DB.Read(CollectionNews)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("news collection = %+v, want empty", docs)
	}
}

func TestArticleCreateDefaults(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")

	a, err := NewArticleService(store).Create(CreateArticleParams{
		Title:      "Hello",
		Content:    "World",
		CategoryID: "cat_tech",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != StatusDraft {
		t.Errorf("Status = %q, want draft default", a.Status)
	}
	if a.Tags == nil || len(a.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", a.Tags)
	}
	if a.AuthorID != nil || a.Author != nil {
		t.Errorf("author = %v / %+v, want nulls", a.AuthorID, a.Author)
	}
	if a.Category == nil || a.Category.ID != "cat_tech" {
		t.Errorf("Category = %+v, want populated cat_tech", a.Category)
	}
	if a.PublishedAt != a.CreatedAt {
		t.Errorf("PublishedAt = %d, want created_at fallback %d", a.PublishedAt, a.CreatedAt)
	}
	if a.Title != "Hello" || a.Content != "World" {
		t.Errorf("round trip = %q / %q", a.Title, a.Content)
	}
}

func TestArticleListSortAndFilters(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	mustCategory(t, store, "world", "World")
	addArticleDoc(t, store, "news_a", "Go generics deep dive", "published", 100, map[string]any{"categoryId": "cat_tech"})
	addArticleDoc(t, store, "news_b", "Election report", "published", 300, map[string]any{"categoryId": "cat_world"})
	addArticleDoc(t, store, "news_c", "Goroutine leaks", "draft", 200, map[string]any{"categoryId": "cat_tech"})

	svc := NewArticleService(store)

	res, err := svc.List(ListArticlesParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"news_b", "news_c", "news_a"}
	if len(res.Articles) != 3 || res.Total != 3 {
		t.Fatalf("got %d articles, total %d", len(res.Articles), res.Total)
	}
	for i, a := range res.Articles {
		if a.ID != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, a.ID, want[i])
		}
	}
	if res.Articles[0].Category == nil || res.Articles[0].Category.Name != "World" {
		t.Errorf("category not populated: %+v", res.Articles[0].Category)
	}

	res, err = svc.List(ListArticlesParams{CategoryID: "cat_tech", Status: "published"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if res.Total != 1 || res.Articles[0].ID != "news_a" {
		t.Errorf("filtered = %+v", res.Articles)
	}

	// Search is case-insensitive and matches title or content.
	res, err = svc.List(ListArticlesParams{Search: "GOROUTINE"})
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if res.Total != 1 || res.Articles[0].ID != "news_c" {
		t.Errorf("search = %+v", res.Articles)
	}
}

func TestArticleListPagination(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	for i, id := range []string{"news_1", "news_2", "news_3"} {
		addArticleDoc(t, store, id, "T", "published", int64(100*(i+1)), map[string]any{"categoryId": "cat_tech"})
	}

	svc := NewArticleService(store)
	res, err := svc.List(ListArticlesParams{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	if len(res.Articles) != 2 || res.Articles[0].ID != "news_2" || res.Articles[1].ID != "news_1" {
		t.Errorf("page = %+v", res.Articles)
	}

	// Offset past the end yields an empty page, not an error.
	res, err = svc.List(ListArticlesParams{Offset: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Articles) != 0 || res.Total != 3 {
		t.Errorf("past-end page = %d articles, total %d", len(res.Articles), res.Total)
	}
}

func TestArticleUpdatePublishTransition(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	svc := NewArticleService(store)
	a, err := svc.Create(CreateArticleParams{Title: "T", Content: "B", CategoryID: "cat_tech"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := "published"
	updated, published, err := svc.Update(a.ID, UpdateArticleParams{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !published {
		t.Error("draft to published transition not reported")
	}
	if updated.Status != StatusPublished || updated.PublishedAt == 0 {
		t.Errorf("updated = %+v", updated)
	}

	// Re-publishing an already published article is not a transition.
	_, published, err = svc.Update(a.ID, UpdateArticleParams{Status: &status})
	if err != nil {
		t.Fatalf("Update again: %v", err)
	}
	if published {
		t.Error("re-publish reported as a transition")
	}
}

func TestArticleUpdateRevalidatesForeignKeys(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	svc := NewArticleService(store)
	a, err := svc.Create(CreateArticleParams{Title: "T", Content: "B", CategoryID: "cat_tech"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "cat_ghost"
	var fkErr *jsonldb.ForeignKeyError
	if _, _, err := svc.Update(a.ID, UpdateArticleParams{CategoryID: &bad}); !errors.As(err, &fkErr) {
		t.Fatalf("err = %v, want *jsonldb.ForeignKeyError", err)
	}

	// The rejected update never reached disk.
	got, err := svc.Get(a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CategoryID != "cat_tech" {
		t.Errorf("CategoryID = %q after rejected update", got.CategoryID)
	}
}

func TestArticleDeleteCascadesComments(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	articles := NewArticleService(store)
	comments := NewCommentService(store)

	a, err := articles.Create(CreateArticleParams{Title: "T", Content: "B", CategoryID: "cat_tech"})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	other, err := articles.Create(CreateArticleParams{Title: "Other", Content: "B", CategoryID: "cat_tech"})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	root, err := comments.Create(CreateCommentParams{NewsID: a.ID, Content: "root"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := comments.Create(CreateCommentParams{NewsID: a.ID, Content: "reply", ParentID: root.ID}); err != nil {
		t.Fatalf("create reply: %v", err)
	}
	keep, err := comments.Create(CreateCommentParams{NewsID: other.ID, Content: "keep"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := articles.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var nfErr *NotFoundError
	if _, err := articles.Get(a.ID); !errors.As(err, &nfErr) {
		t.Fatalf("Get deleted article err = %v, want *NotFoundError", err)
	}
	docs, err := store.DB.Read(CollectionComments)
	if err != nil {
		t.Fatalf("Read comments: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != keep.ID {
		t.Errorf("comments after cascade = %+v, want just %q", docs, keep.ID)
	}
}
