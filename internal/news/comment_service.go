package news

import (
	"github.com/vibebase/vibebase/internal/jsonldb"
)

// CommentService handles threaded comments on articles.
type CommentService struct {
	store *Store
}

// NewCommentService creates a new comment service.
func NewCommentService(store *Store) *CommentService {
	return &CommentService{store: store}
}

// ListForArticle returns the comment forest for an article: roots at the top
// level, direct children nested under Replies, both sorted by created_at
// ascending.
func (s *CommentService) ListForArticle(newsID string) ([]*Comment, error) {
	docs, err := s.store.DB.Read(CollectionComments)
	if err != nil {
		return nil, err
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, err
	}
	var comments []*Comment
	for _, d := range docs {
		if d.MetaString("newsId") != newsID {
			continue
		}
		c := CommentFromDoc(d)
		c.Populate(lk)
		comments = append(comments, c)
	}
	roots := BuildCommentTree(comments)
	if roots == nil {
		roots = []*Comment{}
	}
	return roots, nil
}

// CreateCommentParams are the inputs to Create.
type CreateCommentParams struct {
	NewsID   string
	AuthorID string
	Content  string
	ParentID string
}

// Create validates foreign keys and appends a new comment. Depth is derived
// from the parent; a root comment has depth 0.
func (s *CommentService) Create(p CreateCommentParams) (*Comment, error) {
	if p.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if p.NewsID == "" {
		return nil, &ValidationError{Field: "newsId"}
	}
	doc := jsonldb.NewDocument("cmt", "comment")
	doc.Content = p.Content
	doc.SetMeta("newsId", p.NewsID)
	if p.AuthorID != "" {
		doc.SetMeta("authorId", p.AuthorID)
	}
	if p.ParentID != "" {
		doc.SetMeta("parentId", p.ParentID)
		doc.ParentID = p.ParentID
	}
	doc.SetMeta(jsonldb.MetaCollection, CollectionComments)
	doc.SetForeignKeys(s.store.Registry.For(CollectionComments))
	// The foreign key check also rules out self-reference: the new id does
	// not exist in the collection yet.
	if err := s.store.Enforcer.ValidateCreate(CollectionComments, doc); err != nil {
		return nil, err
	}
	if p.ParentID != "" {
		parent, err := s.store.DB.Get(CollectionComments, p.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			doc.Depth = parent.Depth + 1
			if parent.MetaString("newsId") != p.NewsID {
				return nil, &ValidationError{Field: "parentId", Reason: "parent belongs to a different article"}
			}
		}
	}
	if err := s.store.DB.Append(CollectionComments, doc); err != nil {
		return nil, err
	}
	lk, err := s.store.LoadLookups()
	if err != nil {
		return nil, err
	}
	c := CommentFromDoc(doc)
	c.Populate(lk)
	c.Replies = []*Comment{}
	return c, nil
}

// Delete removes a comment and cascades to its reply chain.
func (s *CommentService) Delete(id string) error {
	err := s.store.Enforcer.Delete(CollectionComments, id)
	if err == jsonldb.ErrNotFound {
		return &NotFoundError{Resource: "comment", ID: id}
	}
	return err
}
