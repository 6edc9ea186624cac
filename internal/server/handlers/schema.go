package handlers

import (
	"context"

	"github.com/invopop/jsonschema"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// SchemaHandler serves JSON Schemas for the API view types so external
// consumers can generate bindings.
type SchemaHandler struct{}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// SchemaResponse maps view names to their JSON Schemas.
type SchemaResponse map[string]*jsonschema.Schema

// Get reflects the API view types into JSON Schemas.
func (h *SchemaHandler) Get(ctx context.Context, req *dto.GetSchemaRequest) (*SchemaResponse, error) {
	r := &jsonschema.Reflector{DoNotReference: true}
	resp := SchemaResponse{
		"category": r.Reflect(&news.Category{}),
		"user":     r.Reflect(&news.User{}),
		"article":  r.Reflect(&news.Article{}),
		"comment":  r.Reflect(&news.Comment{}),
		"stats":    r.Reflect(&news.Stats{}),
	}
	return &resp, nil
}
