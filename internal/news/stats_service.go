package news

import (
	"github.com/vibebase/vibebase/internal/jsonldb"
)

// Stats is the dashboard projection derived from loaded collections.
type Stats struct {
	CategoryCount  int `json:"categoryCount"`
	UserCount      int `json:"userCount"`
	ArticleCount   int `json:"articleCount"`
	CommentCount   int `json:"commentCount"`
	PublishedCount int `json:"publishedCount"`
	DraftCount     int `json:"draftCount"`

	TagFrequency         map[string]int `json:"tagFrequency"`
	ContentTypeFrequency map[string]int `json:"contentTypeFrequency"`
	// ImportanceHistogram has 10 buckets over [0,1): bucket i holds
	// importance in [i/10, (i+1)/10), with 1.0 landing in the last bucket.
	ImportanceHistogram [10]int    `json:"importanceHistogram"`
	Graph               GraphStats `json:"graph"`
}

// GraphStats is the adjacency view over the knowledge-graph collections.
type GraphStats struct {
	EntityCount   int `json:"entityCount"`
	RelationCount int `json:"relationCount"`
	// Degree counts relations touching each entity id.
	Degree map[string]int `json:"degree"`
}

// StatsService computes dashboard statistics.
type StatsService struct {
	store *Store
}

// NewStatsService creates a new stats service.
func NewStatsService(store *Store) *StatsService {
	return &StatsService{store: store}
}

// Get computes all statistics from a fresh read of every collection.
func (s *StatsService) Get() (*Stats, error) {
	stats := &Stats{
		TagFrequency:         map[string]int{},
		ContentTypeFrequency: map[string]int{},
		Graph:                GraphStats{Degree: map[string]int{}},
	}

	collections := []struct {
		name  string
		count *int
	}{
		{CollectionCategories, &stats.CategoryCount},
		{CollectionUsers, &stats.UserCount},
		{CollectionNews, &stats.ArticleCount},
		{CollectionComments, &stats.CommentCount},
		{jsonldb.CollectionDocuments, nil},
	}
	for _, col := range collections {
		docs, err := s.store.DB.Read(col.name)
		if err != nil {
			return nil, err
		}
		if col.count != nil {
			*col.count = len(docs)
		}
		for _, d := range docs {
			tally(stats, d)
			if col.name == CollectionNews {
				if Status(d.MetaString("status")) == StatusPublished {
					stats.PublishedCount++
				}
			}
		}
	}
	stats.DraftCount = stats.ArticleCount - stats.PublishedCount

	entities, err := s.store.DB.Read(jsonldb.CollectionEntities)
	if err != nil {
		return nil, err
	}
	stats.Graph.EntityCount = len(entities)
	relations, err := s.store.DB.Read(jsonldb.CollectionRelations)
	if err != nil {
		return nil, err
	}
	stats.Graph.RelationCount = len(relations)
	for _, r := range relations {
		if from := r.MetaString("from"); from != "" {
			stats.Graph.Degree[from]++
		}
		if to := r.MetaString("to"); to != "" {
			stats.Graph.Degree[to]++
		}
	}
	return stats, nil
}

func tally(stats *Stats, d *jsonldb.Document) {
	for _, tag := range d.Tags {
		stats.TagFrequency[tag]++
	}
	if d.ContentType != "" {
		stats.ContentTypeFrequency[d.ContentType]++
	}
	stats.ImportanceHistogram[importanceBucket(d.Importance)]++
}

// importanceBucket maps importance in [0,1] to its histogram bucket; values
// outside the range clamp to the edge buckets.
func importanceBucket(v float64) int {
	if v >= 1 {
		return 9
	}
	if v < 0 {
		return 0
	}
	return int(v * 10)
}
