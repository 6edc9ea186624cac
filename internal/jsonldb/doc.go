// Package jsonldb implements the JSONL-backed collection store.
//
// # Overview
//
// A [Store] is a directory of collections. Each collection is a newline
// delimited JSON file holding [Document] records, one per line. Collections
// are re-read from disk on every operation: there is no shared cache, so two
// operations never observe each other's in-memory state. They can still race
// on disk (a full rewrite can lose a concurrent append to the same file);
// the store assumes a single writer.
//
// # Mutation discipline
//
// Single-document inserts use an append-only fast path. Everything else is
// "read full collection, compute new full collection, write full collection".
//
// # Referential integrity
//
// Documents may declare foreign keys in their metadata bag. [Enforcer]
// validates them on create and applies restrict/set_null/cascade policies on
// delete, computing the full cascade closure before any file is written.
//
// # File format
//
// One JSON object per line, trailing newline, UTF-8. Malformed lines are
// skipped with a warning so one corrupt row cannot break a collection. A
// legacy shared file at the store root is supported as a read fallback,
// with rows routed to collections by a metadata tag.
package jsonldb
