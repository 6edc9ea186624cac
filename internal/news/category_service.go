package news

import (
	"regexp"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

var categoryCodeRe = regexp.MustCompile(`^[a-z0-9_-]+$`)

// CategoryService handles category CRUD.
type CategoryService struct {
	store *Store
}

// NewCategoryService creates a new category service.
func NewCategoryService(store *Store) *CategoryService {
	return &CategoryService{store: store}
}

// List returns all categories with their computed article counts.
func (s *CategoryService) List() ([]*Category, error) {
	docs, err := s.store.DB.Read(CollectionCategories)
	if err != nil {
		return nil, err
	}
	articles, err := s.store.DB.Read(CollectionNews)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, a := range articles {
		counts[a.MetaString("categoryId")]++
	}
	categories := make([]*Category, 0, len(docs))
	for _, d := range docs {
		c := CategoryFromDoc(d)
		c.ArticleCount = counts[c.ID]
		categories = append(categories, c)
	}
	return categories, nil
}

// CreateCategoryParams are the inputs to Create.
type CreateCategoryParams struct {
	Name        string
	Description string
	Icon        string
	Slug        string
	Code        string
}

// Create adds a category with the derived id "cat_" + code.
func (s *CategoryService) Create(p CreateCategoryParams) (*Category, error) {
	if p.Code == "" {
		return nil, &ValidationError{Field: "code"}
	}
	if !categoryCodeRe.MatchString(p.Code) {
		return nil, &ValidationError{Field: "code", Reason: "must match [a-z0-9_-]+"}
	}
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	id := "cat_" + p.Code
	existing, err := s.store.DB.Get(CollectionCategories, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ConflictError{Resource: "category", Field: "id", Value: id}
	}
	slug := p.Slug
	if slug == "" {
		slug = p.Code
	}
	doc := jsonldb.NewDocument("cat", "category")
	doc.ID = id
	doc.Content = p.Name
	doc.SetMeta("name", p.Name)
	doc.SetMeta("description", p.Description)
	doc.SetMeta("icon", p.Icon)
	doc.SetMeta("slug", slug)
	doc.SetMeta(jsonldb.MetaCollection, CollectionCategories)
	if err := s.store.DB.Append(CollectionCategories, doc); err != nil {
		return nil, err
	}
	return CategoryFromDoc(doc), nil
}

// UpdateCategoryParams are the partial fields accepted by Update. Nil
// pointers leave the field untouched.
type UpdateCategoryParams struct {
	Name        *string
	Description *string
	Icon        *string
	Slug        *string
}

// Update merges the provided fields into the category.
func (s *CategoryService) Update(id string, p UpdateCategoryParams) (*Category, error) {
	docs, err := s.store.DB.Read(CollectionCategories)
	if err != nil {
		return nil, err
	}
	var updated *jsonldb.Document
	for i, d := range docs {
		if d.ID != id {
			continue
		}
		updated = d.Clone()
		if p.Name != nil {
			updated.SetMeta("name", *p.Name)
			updated.Content = *p.Name
		}
		if p.Description != nil {
			updated.SetMeta("description", *p.Description)
		}
		if p.Icon != nil {
			updated.SetMeta("icon", *p.Icon)
		}
		if p.Slug != nil {
			updated.SetMeta("slug", *p.Slug)
		}
		updated.Touch()
		docs[i] = updated
		break
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "category", ID: id}
	}
	if err := s.store.DB.Replace(CollectionCategories, docs); err != nil {
		return nil, err
	}
	return CategoryFromDoc(updated), nil
}

// Delete removes a category. Fails with *jsonldb.IntegrityError while any
// article still references it.
func (s *CategoryService) Delete(id string) error {
	err := s.store.Enforcer.Delete(CollectionCategories, id)
	if err == jsonldb.ErrNotFound {
		return &NotFoundError{Resource: "category", ID: id}
	}
	return err
}
