package news

import (
	"strings"

	"github.com/vibebase/vibebase/internal/jsonldb"
)

// UserService handles user CRUD.
type UserService struct {
	store *Store
}

// NewUserService creates a new user service.
func NewUserService(store *Store) *UserService {
	return &UserService{store: store}
}

// List returns all users.
func (s *UserService) List() ([]*User, error) {
	docs, err := s.store.DB.Read(CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(docs))
	for _, d := range docs {
		users = append(users, UserFromDoc(d))
	}
	return users, nil
}

// CreateUserParams are the inputs to Create.
type CreateUserParams struct {
	Name   string
	Email  string
	Avatar string
	Role   string
}

// Create adds a user. Email must be unique across the collection.
func (s *UserService) Create(p CreateUserParams) (*User, error) {
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if p.Email == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if p.Role == "" {
		return nil, &ValidationError{Field: "role"}
	}
	if !ValidRole(p.Role) {
		return nil, &ValidationError{Field: "role", Reason: "must be one of admin, editor, reader, guest"}
	}
	docs, err := s.store.DB.Read(CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if strings.EqualFold(d.MetaString("email"), p.Email) {
			return nil, &ConflictError{Resource: "user", Field: "email", Value: p.Email}
		}
	}
	doc := jsonldb.NewDocument("usr", "user")
	doc.Content = p.Name
	doc.SetMeta("name", p.Name)
	doc.SetMeta("email", p.Email)
	doc.SetMeta("avatar", p.Avatar)
	doc.SetMeta("role", p.Role)
	doc.SetMeta(jsonldb.MetaCollection, CollectionUsers)
	if err := s.store.DB.Append(CollectionUsers, doc); err != nil {
		return nil, err
	}
	return UserFromDoc(doc), nil
}

// UpdateUserParams are the partial fields accepted by Update.
type UpdateUserParams struct {
	Name   *string
	Email  *string
	Avatar *string
	Role   *string
}

// Update merges the provided fields into the user.
func (s *UserService) Update(id string, p UpdateUserParams) (*User, error) {
	if p.Role != nil && !ValidRole(*p.Role) {
		return nil, &ValidationError{Field: "role", Reason: "must be one of admin, editor, reader, guest"}
	}
	docs, err := s.store.DB.Read(CollectionUsers)
	if err != nil {
		return nil, err
	}
	if p.Email != nil {
		for _, d := range docs {
			if d.ID != id && strings.EqualFold(d.MetaString("email"), *p.Email) {
				return nil, &ConflictError{Resource: "user", Field: "email", Value: *p.Email}
			}
		}
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
		if p.Email != nil {
			updated.SetMeta("email", *p.Email)
		}
		if p.Avatar != nil {
			updated.SetMeta("avatar", *p.Avatar)
		}
		if p.Role != nil {
			updated.SetMeta("role", *p.Role)
		}
		updated.Touch()
		docs[i] = updated
		break
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	if err := s.store.DB.Replace(CollectionUsers, docs); err != nil {
		return nil, err
	}
	return UserFromDoc(updated), nil
}

// Delete removes a user. Articles and comments authored by the user keep
// existing with their authorId nulled (set_null policy); the original
// system never applied the declared policy here, which was a documented
// gap rather than intended behavior.
func (s *UserService) Delete(id string) error {
	err := s.store.Enforcer.Delete(CollectionUsers, id)
	if err == jsonldb.ErrNotFound {
		return &NotFoundError{Resource: "user", ID: id}
	}
	return err
}
