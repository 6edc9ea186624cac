package jsonldb

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// Well-known collection names.
const (
	// CollectionDocuments is the base memory store, persisted in the legacy
	// shared file at the store root.
	CollectionDocuments = "documents"
	// CollectionEntities holds knowledge-graph entities.
	CollectionEntities = "entities"
	// CollectionRelations holds knowledge-graph relations.
	CollectionRelations = "relations"
)

const collectionFile = "documents.jsonl"

// Store is a directory of JSONL collections.
type Store struct {
	root string
}

// NewStore opens a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &Store{root: dir}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// path returns the dedicated file for a collection.
func (s *Store) path(collection string) string {
	return filepath.Join(s.root, collection, collectionFile)
}

// legacyPath returns the legacy read-fallback file for a collection.
// Graph collections have their own root-level files; everything else shares
// the root documents.jsonl, routed by the _collection metadata tag.
func (s *Store) legacyPath(collection string) (path string, tagged bool) {
	switch collection {
	case CollectionEntities, CollectionRelations:
		return filepath.Join(s.root, collection+".jsonl"), false
	default:
		return filepath.Join(s.root, collectionFile), true
	}
}

// Read loads a collection, merging the dedicated file with matching rows
// from the legacy fallback. Dedicated rows win on id collisions. Missing
// files yield an empty slice, never an error.
func (s *Store) Read(collection string) ([]*Document, error) {
	docs, err := readFile(s.path(collection))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		seen[d.ID] = struct{}{}
	}
	legacy, tagged := s.legacyPath(collection)
	rows, err := readFile(legacy)
	if err != nil {
		return nil, err
	}
	for _, d := range rows {
		if tagged && !legacyRowBelongs(d, collection) {
			continue
		}
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		docs = append(docs, d)
	}
	return docs, nil
}

// legacyRowBelongs reports whether a legacy shared-file row belongs to the
// collection. Untagged rows belong to the base memory store.
func legacyRowBelongs(d *Document, collection string) bool {
	tag := d.Collection()
	if tag == "" {
		return collection == CollectionDocuments
	}
	return tag == collection
}

// Get returns the document with the given id, or nil if not found.
func (s *Store) Get(collection, id string) (*Document, error) {
	docs, err := s.Read(collection)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

// Append persists a single new document without rewriting the file.
// This is the fast path for creates; updates and deletes use Replace.
func (s *Store) Append(collection string, doc *Document) error {
	path := s.path(collection)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: path, Err: err}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: "marshal", Path: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Replace persists the complete desired contents of a collection, one JSON
// object per line. Rows for this collection are purged from the legacy
// fallback so a deleted id cannot resurrect through the merge.
func (s *Store) Replace(collection string, docs []*Document) error {
	path := s.path(collection)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: path, Err: err}
	}
	if err := writeFile(path, docs); err != nil {
		return err
	}
	return s.purgeLegacy(collection)
}

// purgeLegacy drops rows tagged for the collection from the legacy shared
// file. The dedicated file now owns them.
func (s *Store) purgeLegacy(collection string) error {
	legacy, tagged := s.legacyPath(collection)
	if !tagged {
		return nil
	}
	rows, err := readFile(legacy)
	if err != nil {
		return err
	}
	kept := rows[:0]
	changed := false
	for _, d := range rows {
		if legacyRowBelongs(d, collection) && collection != CollectionDocuments {
			changed = true
			continue
		}
		kept = append(kept, d)
	}
	if !changed {
		return nil
	}
	return writeFile(legacy, kept)
}

// readFile loads every parseable row from a JSONL file. Malformed lines are
// skipped with a warning; a missing file yields an empty slice.
func readFile(path string) ([]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	var docs []*Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		doc := &Document{}
		if err := json.Unmarshal(line, doc); err != nil {
			slog.Warn("Skipping malformed JSONL row", "path", path, "line", lineNo, "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return docs, nil
}

// writeFile serializes docs to path, one JSON object per line.
func writeFile(path string, docs []*Document) error {
	f, err := os.Create(path)
	if err != nil {
		return &StorageError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()
	w := bufio.NewWriter(f)
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return &StorageError{Op: "marshal", Path: path, Err: err}
		}
		if _, err := w.Write(data); err != nil {
			return &StorageError{Op: "write", Path: path, Err: err}
		}
		if err := w.WriteByte('\n'); err != nil {
			return &StorageError{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &StorageError{Op: "flush", Path: path, Err: err}
	}
	return nil
}
