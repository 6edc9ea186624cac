package news

import (
	"sort"
)

// Lookups holds the id-keyed maps used to resolve foreign keys into embedded
// objects on read paths.
type Lookups struct {
	Categories map[string]*Category
	Users      map[string]*User
}

// LoadLookups reads the categories and users collections into lookup maps.
func (s *Store) LoadLookups() (*Lookups, error) {
	lk := &Lookups{
		Categories: map[string]*Category{},
		Users:      map[string]*User{},
	}
	cats, err := s.DB.Read(CollectionCategories)
	if err != nil {
		return nil, err
	}
	for _, d := range cats {
		lk.Categories[d.ID] = CategoryFromDoc(d)
	}
	users, err := s.DB.Read(CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, d := range users {
		lk.Users[d.ID] = UserFromDoc(d)
	}
	return lk, nil
}

// Populate embeds the related category and author. A missing or nulled
// reference leaves the key as an explicit null, never absent.
func (a *Article) Populate(lk *Lookups) {
	a.Category = lk.Categories[a.CategoryID]
	if a.AuthorID != nil {
		a.Author = lk.Users[*a.AuthorID]
	}
}

// Populate embeds the comment's author.
func (c *Comment) Populate(lk *Lookups) {
	if c.AuthorID != nil {
		c.Author = lk.Users[*c.AuthorID]
	}
}

// BuildCommentTree assembles flat comments into a forest. Input order does
// not matter: comments are sorted by created_at ascending (ties broken by id
// ascending) and each comment's Replies holds its direct children in the
// same order. A comment whose parentId does not resolve to a fetched comment
// becomes a root; the cascade policy on parentId should prevent dangling
// parents, but a row that slips through must not break the tree.
func BuildCommentTree(comments []*Comment) []*Comment {
	sorted := append([]*Comment(nil), comments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt != sorted[j].CreatedAt {
			return sorted[i].CreatedAt < sorted[j].CreatedAt
		}
		return sorted[i].ID < sorted[j].ID
	})
	byID := make(map[string]*Comment, len(sorted))
	for _, c := range sorted {
		c.Replies = []*Comment{}
		byID[c.ID] = c
	}
	var roots []*Comment
	for _, c := range sorted {
		if c.ParentID != "" {
			if parent, ok := byID[c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
