package jsonldb

import (
	"encoding/json"
	"time"

	"github.com/maruel/ksid"
)

// MetaCollection is the metadata key routing legacy shared-file rows to a
// collection.
const MetaCollection = "_collection"

// MetaForeignKeys is the metadata key holding per-document foreign key
// declarations.
const MetaForeignKeys = "_foreignKeys"

// Document is the universal record shape shared by all collections.
//
// Role-specific fields (name, email, categoryId, ...) live in the Metadata
// bag; typed projections over them are the caller's concern.
type Document struct {
	ID             string         `json:"id"`
	Content        string         `json:"content"`
	ContentType    string         `json:"content_type"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Importance     float64        `json:"importance,omitempty"`
	CreatedAt      int64          `json:"created_at"`
	LastAccessedAt int64          `json:"last_accessed_at"`
	ParentID       string         `json:"parent_id,omitempty"`
	Children       []string       `json:"children,omitempty"`
	Depth          int            `json:"depth,omitempty"`
}

// NewDocument creates a document with a generated id ("prefix_<ksid>") and
// current timestamps.
func NewDocument(prefix, contentType string) *Document {
	now := time.Now().UnixMilli()
	return &Document{
		ID:             prefix + "_" + ksid.NewID().String(),
		ContentType:    contentType,
		Metadata:       map[string]any{},
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	if d.Metadata != nil {
		c.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	if d.Tags != nil {
		c.Tags = append([]string(nil), d.Tags...)
	}
	if d.Children != nil {
		c.Children = append([]string(nil), d.Children...)
	}
	return &c
}

// Touch refreshes the last-accessed timestamp.
func (d *Document) Touch() {
	d.LastAccessedAt = time.Now().UnixMilli()
}

// MetaString returns the metadata value as a string, or "" when absent,
// null, or not a string.
func (d *Document) MetaString(key string) string {
	if d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata[key].(string)
	return s
}

// MetaInt returns the metadata value as an int64. JSON numbers decode as
// float64; both forms are accepted.
func (d *Document) MetaInt(key string) int64 {
	if d.Metadata == nil {
		return 0
	}
	switch v := d.Metadata[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

// MetaIsNull reports whether the key is present with an explicit null value.
func (d *Document) MetaIsNull(key string) bool {
	if d.Metadata == nil {
		return false
	}
	v, ok := d.Metadata[key]
	return ok && v == nil
}

// SetMeta sets a metadata value, allocating the bag if needed.
func (d *Document) SetMeta(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = map[string]any{}
	}
	d.Metadata[key] = value
}

// Collection returns the legacy collection routing tag, if any.
func (d *Document) Collection() string {
	return d.MetaString(MetaCollection)
}

// ForeignKeys parses the per-document foreign key declarations out of the
// metadata bag. Returns nil when the document declares none.
func (d *Document) ForeignKeys() map[string]ForeignKey {
	if d.Metadata == nil {
		return nil
	}
	raw, ok := d.Metadata[MetaForeignKeys]
	if !ok {
		return nil
	}
	// The bag holds either the decoded JSON form (map[string]any) or the
	// typed form set by SetForeignKeys before the document was persisted.
	if fks, ok := raw.(map[string]ForeignKey); ok {
		return fks
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	fks := make(map[string]ForeignKey, len(m))
	for field, v := range m {
		decl, ok := v.(map[string]any)
		if !ok {
			continue
		}
		target, _ := decl["targetCollection"].(string)
		onDelete, _ := decl["onDelete"].(string)
		if target == "" {
			continue
		}
		fks[field] = ForeignKey{TargetCollection: target, OnDelete: Policy(onDelete)}
	}
	if len(fks) == 0 {
		return nil
	}
	return fks
}

// SetForeignKeys records foreign key declarations in the metadata bag.
// Declarations are immutable once written; they are set at creation time.
func (d *Document) SetForeignKeys(fks map[string]ForeignKey) {
	d.SetMeta(MetaForeignKeys, fks)
}
