package jsonldb

import (
	"errors"
	"testing"
)

// testRegistry mirrors a small content graph: posts restrict-reference their
// topic, null their writer on delete, and replies cascade from posts and from
// their parent reply.
func testRegistry() *Registry {
	r := NewRegistry()
	r.Declare("posts", "topicId", ForeignKey{TargetCollection: "topics", OnDelete: PolicyRestrict})
	r.Declare("posts", "writerId", ForeignKey{TargetCollection: "writers", OnDelete: PolicySetNull})
	r.Declare("replies", "postId", ForeignKey{TargetCollection: "posts", OnDelete: PolicyCascade})
	r.Declare("replies", "parentId", ForeignKey{TargetCollection: "replies", OnDelete: PolicyCascade})
	r.Declare("replies", "writerId", ForeignKey{TargetCollection: "writers", OnDelete: PolicySetNull})
	return r
}

func newTestEnforcer(t *testing.T) (*Store, *Enforcer) {
	t.Helper()
	s := newTestStore(t)
	return s, NewEnforcer(s, testRegistry())
}

func addDoc(t *testing.T, s *Store, collection, id string, meta map[string]any) *Document {
	t.Helper()
	d := NewDocument("x", collection)
	d.ID = id
	for k, v := range meta {
		d.SetMeta(k, v)
	}
	if err := s.Append(collection, d); err != nil {
		t.Fatalf("Append %s/%s: %v", collection, id, err)
	}
	return d
}

func ids(docs []*Document) map[string]bool {
	m := map[string]bool{}
	for _, d := range docs {
		m[d.ID] = true
	}
	return m
}

func TestValidateCreateUnresolvedReference(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)

	d := NewDocument("post", "posts")
	d.SetMeta("topicId", "top_missing")
	err := e.ValidateCreate("posts", d)
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("err = %v, want *ForeignKeyError", err)
	}
	if fkErr.Field != "topicId" || fkErr.Value != "top_missing" || fkErr.TargetCollection != "topics" {
		t.Errorf("ForeignKeyError = %+v", fkErr)
	}
}

func TestValidateCreateResolvedAndNullSkipped(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)

	// writerId absent: a null foreign key is always valid.
	d := NewDocument("post", "posts")
	d.SetMeta("topicId", "top_1")
	if err := e.ValidateCreate("posts", d); err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
}

func TestValidateCreateUsesDocumentDeclarations(t *testing.T) {
	_, e := newTestEnforcer(t)
	// The document declares its own foreign keys; the registry has none for
	// this collection.
	d := NewDocument("x", "extras")
	d.SetMeta("topicId", "top_missing")
	d.SetForeignKeys(map[string]ForeignKey{
		"topicId": {TargetCollection: "topics", OnDelete: PolicyRestrict},
	})
	var fkErr *ForeignKeyError
	if err := e.ValidateCreate("extras", d); !errors.As(err, &fkErr) {
		t.Fatalf("err = %v, want *ForeignKeyError", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	_, e := newTestEnforcer(t)
	if err := e.Delete("topics", "top_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRestrictBlocksAndWritesNothing(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)
	addDoc(t, s, "posts", "post_1", map[string]any{"topicId": "top_1"})

	err := e.Delete("topics", "top_1")
	var intErr *IntegrityError
	if !errors.As(err, &intErr) {
		t.Fatalf("err = %v, want *IntegrityError", err)
	}
	if intErr.BlockingCollection != "posts" || intErr.Field != "topicId" {
		t.Errorf("IntegrityError = %+v", intErr)
	}

	// Nothing was deleted or modified.
	topics, _ := s.Read("topics")
	if !ids(topics)["top_1"] {
		t.Error("topic removed despite restrict")
	}
	posts, _ := s.Read("posts")
	if !ids(posts)["post_1"] {
		t.Error("post removed despite restrict")
	}
}

func TestDeleteCascadeClosure(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)
	addDoc(t, s, "posts", "post_1", map[string]any{"topicId": "top_1"})
	addDoc(t, s, "posts", "post_2", map[string]any{"topicId": "top_1"})
	// A reply chain three levels deep under post_1, plus one on post_2.
	addDoc(t, s, "replies", "rep_1", map[string]any{"postId": "post_1"})
	addDoc(t, s, "replies", "rep_2", map[string]any{"postId": "post_1", "parentId": "rep_1"})
	addDoc(t, s, "replies", "rep_3", map[string]any{"postId": "post_1", "parentId": "rep_2"})
	addDoc(t, s, "replies", "rep_other", map[string]any{"postId": "post_2"})

	if err := e.Delete("posts", "post_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	posts, _ := s.Read("posts")
	if got := ids(posts); got["post_1"] || !got["post_2"] {
		t.Errorf("posts after delete = %v", got)
	}
	replies, _ := s.Read("replies")
	got := ids(replies)
	for _, id := range []string{"rep_1", "rep_2", "rep_3"} {
		if got[id] {
			t.Errorf("%s survived the cascade", id)
		}
	}
	if !got["rep_other"] {
		t.Error("rep_other on another post was deleted")
	}
}

func TestDeleteSetNull(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)
	addDoc(t, s, "writers", "wrt_1", nil)
	addDoc(t, s, "posts", "post_1", map[string]any{"topicId": "top_1", "writerId": "wrt_1"})
	addDoc(t, s, "replies", "rep_1", map[string]any{"postId": "post_1", "writerId": "wrt_1"})

	if err := e.Delete("writers", "wrt_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	post, err := s.Get("posts", "post_1")
	if err != nil || post == nil {
		t.Fatalf("post gone: %v", err)
	}
	if !post.MetaIsNull("writerId") {
		t.Errorf("post writerId = %v, want explicit null", post.Metadata["writerId"])
	}
	if post.MetaString("topicId") != "top_1" {
		t.Error("unrelated field modified")
	}
	rep, err := s.Get("replies", "rep_1")
	if err != nil || rep == nil {
		t.Fatalf("reply gone: %v", err)
	}
	if !rep.MetaIsNull("writerId") {
		t.Errorf("reply writerId = %v, want explicit null", rep.Metadata["writerId"])
	}
}

func TestDeleteRestrictInsideClosureDoesNotBlock(t *testing.T) {
	s := newTestStore(t)
	// Shadows cascade from sources but also restrict-reference them through a
	// second field. A shadow inside the cascade closure dies with its source
	// and must not block the delete.
	r := NewRegistry()
	r.Declare("shadows", "sourceId", ForeignKey{TargetCollection: "sources", OnDelete: PolicyCascade})
	r.Declare("shadows", "pinnedId", ForeignKey{TargetCollection: "sources", OnDelete: PolicyRestrict})
	e := NewEnforcer(s, r)

	addDoc(t, s, "sources", "src_1", nil)
	addDoc(t, s, "shadows", "shd_1", map[string]any{"sourceId": "src_1", "pinnedId": "src_1"})

	if err := e.Delete("sources", "src_1"); err != nil {
		t.Fatalf("Delete blocked by in-closure restrict: %v", err)
	}
	shadows, _ := s.Read("shadows")
	if len(shadows) != 0 {
		t.Errorf("shadows = %+v, want empty", shadows)
	}
}

func TestDeleteRestrictFromSurvivorBlocksCascade(t *testing.T) {
	s := newTestStore(t)
	r := NewRegistry()
	r.Declare("shadows", "sourceId", ForeignKey{TargetCollection: "sources", OnDelete: PolicyCascade})
	r.Declare("pins", "shadowId", ForeignKey{TargetCollection: "shadows", OnDelete: PolicyRestrict})
	e := NewEnforcer(s, r)

	addDoc(t, s, "sources", "src_1", nil)
	addDoc(t, s, "shadows", "shd_1", map[string]any{"sourceId": "src_1"})
	addDoc(t, s, "pins", "pin_1", map[string]any{"shadowId": "shd_1"})

	// The cascade would remove shd_1, but pin_1 survives and restricts it:
	// the whole delete aborts and nothing changes.
	var intErr *IntegrityError
	if err := e.Delete("sources", "src_1"); !errors.As(err, &intErr) {
		t.Fatalf("err = %v, want *IntegrityError", err)
	}
	sources, _ := s.Read("sources")
	shadows, _ := s.Read("shadows")
	if len(sources) != 1 || len(shadows) != 1 {
		t.Errorf("state changed after aborted delete: %d sources, %d shadows", len(sources), len(shadows))
	}
}

func TestEnforcerStaticRegistryFallback(t *testing.T) {
	s, e := newTestEnforcer(t)
	addDoc(t, s, "topics", "top_1", nil)
	// The post carries no _foreignKeys metadata; the registry declarations
	// still apply on delete.
	addDoc(t, s, "posts", "post_1", map[string]any{"topicId": "top_1"})

	var intErr *IntegrityError
	if err := e.Delete("topics", "top_1"); !errors.As(err, &intErr) {
		t.Fatalf("err = %v, want *IntegrityError via registry fallback", err)
	}
}
