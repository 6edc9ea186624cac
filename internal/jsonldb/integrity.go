package jsonldb

import (
	"sort"
)

// Policy is the action applied to a referencing document when its target is
// deleted.
type Policy string

const (
	// PolicyRestrict blocks the delete while a reference exists.
	PolicyRestrict Policy = "restrict"
	// PolicySetNull nulls the referencing field.
	PolicySetNull Policy = "set_null"
	// PolicyCascade deletes the referencing document, recursively.
	PolicyCascade Policy = "cascade"
)

// ForeignKey declares that a metadata field references a document id in
// another collection.
type ForeignKey struct {
	TargetCollection string `json:"targetCollection"`
	OnDelete         Policy `json:"onDelete"`
}

// Registry is the static foreign-key catalog keyed by (collection, field).
//
// Declarations also travel inside each document's metadata; the registry is
// the fallback for documents that predate per-document declarations, and the
// source used when stamping declarations onto new documents. It is purely
// descriptive: enforcement lives in [Enforcer].
type Registry struct {
	byCollection map[string]map[string]ForeignKey
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byCollection: map[string]map[string]ForeignKey{}}
}

// Declare registers a foreign key for every document of a collection.
func (r *Registry) Declare(collection, field string, fk ForeignKey) {
	if r.byCollection[collection] == nil {
		r.byCollection[collection] = map[string]ForeignKey{}
	}
	r.byCollection[collection][field] = fk
}

// For returns the declared (field, foreign key) pairs for a collection.
func (r *Registry) For(collection string) map[string]ForeignKey {
	return r.byCollection[collection]
}

// Collections returns every collection with declarations, sorted, so the
// enforcer walks candidates in a deterministic order.
func (r *Registry) Collections() []string {
	names := make([]string, 0, len(r.byCollection))
	for name := range r.byCollection {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enforcer validates foreign keys on create and applies delete policies.
//
// Collections are loaded fresh per operation, never cached across requests.
type Enforcer struct {
	store    *Store
	registry *Registry
}

// NewEnforcer creates an enforcer over the store using the given registry as
// the declaration fallback.
func NewEnforcer(store *Store, registry *Registry) *Enforcer {
	return &Enforcer{store: store, registry: registry}
}

// declarationsFor returns the effective foreign keys of a document: its own
// metadata declarations when present, otherwise the registry's.
func (e *Enforcer) declarationsFor(collection string, doc *Document) map[string]ForeignKey {
	if fks := doc.ForeignKeys(); fks != nil {
		return fks
	}
	return e.registry.For(collection)
}

// ValidateCreate verifies every non-null foreign key field of doc against a
// fresh read of its target collection. Returns a *ForeignKeyError on the
// first unresolved reference; the document must not be persisted in that
// case.
func (e *Enforcer) ValidateCreate(collection string, doc *Document) error {
	fks := e.declarationsFor(collection, doc)
	fields := make([]string, 0, len(fks))
	for field := range fks {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		value := doc.MetaString(field)
		if value == "" {
			continue
		}
		fk := fks[field]
		target, err := e.store.Get(fk.TargetCollection, value)
		if err != nil {
			return err
		}
		if target == nil {
			return &ForeignKeyError{Field: field, Value: value, TargetCollection: fk.TargetCollection}
		}
	}
	return nil
}

// deletePlan is the outcome of the restrict-check closure: everything to
// remove and every field to null, grouped by collection.
type deletePlan struct {
	// deletions marks document ids scheduled for removal, per collection.
	deletions map[string]map[string]bool
	// nulls maps collection -> document id -> fields to null.
	nulls map[string]map[string][]string
}

// Delete removes the document after resolving every incoming reference.
//
// Phase 1 computes the full cascade closure and then checks every document
// outside the closure for restrict and set_null references into it; any
// restrict match aborts with *IntegrityError before a single byte is
// written. Phase 2 applies all pending nulls and deletions, writing each
// affected collection exactly once.
func (e *Enforcer) Delete(collection, id string) error {
	target, err := e.store.Get(collection, id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}

	// One consistent snapshot of every declared collection for the whole
	// operation.
	snapshot := map[string][]*Document{}
	load := func(name string) ([]*Document, error) {
		if docs, ok := snapshot[name]; ok {
			return docs, nil
		}
		docs, err := e.store.Read(name)
		if err != nil {
			return nil, err
		}
		snapshot[name] = docs
		return docs, nil
	}
	if _, err := load(collection); err != nil {
		return err
	}

	plan := &deletePlan{
		deletions: map[string]map[string]bool{collection: {id: true}},
		nulls:     map[string]map[string][]string{},
	}

	// Phase 1a: cascade closure. BFS from the target; each cascaded document
	// becomes a new delete target.
	type ref struct{ collection, id string }
	queue := []ref{{collection, id}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, refCol := range e.registry.Collections() {
			docs, err := load(refCol)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				if plan.deletions[refCol][doc.ID] {
					continue
				}
				for field, fk := range e.declarationsFor(refCol, doc) {
					if fk.TargetCollection != cur.collection || fk.OnDelete != PolicyCascade {
						continue
					}
					if doc.MetaString(field) != cur.id {
						continue
					}
					if plan.deletions[refCol] == nil {
						plan.deletions[refCol] = map[string]bool{}
					}
					plan.deletions[refCol][doc.ID] = true
					queue = append(queue, ref{refCol, doc.ID})
					break
				}
			}
		}
	}

	// Phase 1b: restrict and set_null, evaluated against survivors only.
	// References from documents inside the closure die with them and never
	// block the delete.
	for _, refCol := range e.registry.Collections() {
		docs, err := load(refCol)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if plan.deletions[refCol][doc.ID] {
				continue
			}
			fks := e.declarationsFor(refCol, doc)
			fields := make([]string, 0, len(fks))
			for field := range fks {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fk := fks[field]
				value := doc.MetaString(field)
				if value == "" || !plan.deletions[fk.TargetCollection][value] {
					continue
				}
				switch fk.OnDelete {
				case PolicyRestrict:
					return &IntegrityError{
						Collection:         collection,
						ID:                 id,
						BlockingCollection: refCol,
						Field:              field,
					}
				case PolicySetNull:
					if plan.nulls[refCol] == nil {
						plan.nulls[refCol] = map[string][]string{}
					}
					plan.nulls[refCol][doc.ID] = append(plan.nulls[refCol][doc.ID], field)
				case PolicyCascade:
					// Already handled by the closure walk.
				}
			}
		}
	}

	// Phase 2: commit. Each affected collection is rewritten exactly once.
	affected := map[string]bool{}
	for name := range plan.deletions {
		affected[name] = true
	}
	for name := range plan.nulls {
		affected[name] = true
	}
	names := make([]string, 0, len(affected))
	for name := range affected {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		docs, err := load(name)
		if err != nil {
			return err
		}
		next := make([]*Document, 0, len(docs))
		for _, doc := range docs {
			if plan.deletions[name][doc.ID] {
				continue
			}
			if fields := plan.nulls[name][doc.ID]; len(fields) > 0 {
				doc = doc.Clone()
				for _, field := range fields {
					doc.SetMeta(field, nil)
				}
				doc.Touch()
			}
			next = append(next, doc)
		}
		if err := e.store.Replace(name, next); err != nil {
			return err
		}
	}
	return nil
}
