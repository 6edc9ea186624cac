package news

import (
	"testing"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

func TestStatsCounts(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	mustUser(t, store, "Alice", "alice@example.com")
	addArticleDoc(t, store, "news_1", "A", "published", 100, map[string]any{"categoryId": "cat_tech"})
	addArticleDoc(t, store, "news_2", "B", "draft", 0, map[string]any{"categoryId": "cat_tech"})
	addArticleDoc(t, store, "news_3", "C", "published", 200, map[string]any{"categoryId": "cat_tech"})
	if _, err := NewCommentService(store).Create(CreateCommentParams{NewsID: "news_1", Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	stats, err := NewStatsService(store).Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.CategoryCount != 1 || stats.UserCount != 1 || stats.ArticleCount != 3 || stats.CommentCount != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.PublishedCount != 2 || stats.DraftCount != 1 {
		t.Errorf("published/draft = %d/%d", stats.PublishedCount, stats.DraftCount)
	}
	if stats.ContentTypeFrequency["news"] != 3 || stats.ContentTypeFrequency["comment"] != 1 {
		t.Errorf("content types = %v", stats.ContentTypeFrequency)
	}
}

func TestStatsTagFrequency(t *testing.T) {
	store := newTestStore(t)
	mustCategory(t, store, "tech", "Technology")
	svc := NewArticleService(store)
	if _, err := svc.Create(CreateArticleParams{Title: "A", Content: "B", CategoryID: "cat_tech", Tags: []string{"go", "db"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(CreateArticleParams{Title: "C", Content: "D", CategoryID: "cat_tech", Tags: []string{"go"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stats, err := NewStatsService(store).Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.TagFrequency["go"] != 2 || stats.TagFrequency["db"] != 1 {
		t.Errorf("tags = %v", stats.TagFrequency)
	}
}

func TestStatsImportanceHistogram(t *testing.T) {
	store := newTestStore(t)
	for _, v := range []float64{0, 0.05, 0.15, 0.95, 1.0, 1.5, -0.2} {
		d := jsonldb.NewDocument("mem", "memory")
		d.Importance = v
		if err := store.DB.Append(jsonldb.CollectionDocuments, d); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	stats, err := NewStatsService(store).Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// 0, 0.05 and the clamped -0.2 land in bucket 0; 0.15 in bucket 1;
	// 0.95, 1.0 and the clamped 1.5 in bucket 9.
	want := [10]int{0: 3, 1: 1, 9: 3}
	if stats.ImportanceHistogram != want {
		t.Errorf("histogram = %v, want %v", stats.ImportanceHistogram, want)
	}
}

func TestStatsGraphDegree(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"ent_a", "ent_b", "ent_c"} {
		d := jsonldb.NewDocument("ent", "entity")
		d.ID = id
		if err := store.DB.Append(jsonldb.CollectionEntities, d); err != nil {
			t.Fatalf("Append entity: %v", err)
		}
	}
	rels := [][2]string{{"ent_a", "ent_b"}, {"ent_a", "ent_c"}}
	for _, r := range rels {
		d := jsonldb.NewDocument("rel", "relation")
		d.SetMeta("from", r[0])
		d.SetMeta("to", r[1])
		if err := store.DB.Append(jsonldb.CollectionRelations, d); err != nil {
			t.Fatalf("Append relation: %v", err)
		}
	}

	stats, err := NewStatsService(store).Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.Graph.EntityCount != 3 || stats.Graph.RelationCount != 2 {
		t.Errorf("graph = %+v", stats.Graph)
	}
	if stats.Graph.Degree["ent_a"] != 2 || stats.Graph.Degree["ent_b"] != 1 || stats.Graph.Degree["ent_c"] != 1 {
		t.Errorf("degree = %v", stats.Graph.Degree)
	}
}
