package jsonldb

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDocumentID(t *testing.T) {
	d := NewDocument("usr", "user")
	if !strings.HasPrefix(d.ID, "usr_") {
		t.Errorf("ID = %q, want usr_ prefix", d.ID)
	}
	if d.CreatedAt == 0 || d.LastAccessedAt != d.CreatedAt {
		t.Errorf("timestamps not initialized: %d, %d", d.CreatedAt, d.LastAccessedAt)
	}
	if d.ContentType != "user" {
		t.Errorf("ContentType = %q", d.ContentType)
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	d := NewDocument("cat", "category")
	d.SetMeta("name", "Tech")
	d.Tags = []string{"a"}

	c := d.Clone()
	c.SetMeta("name", "Changed")
	c.Tags[0] = "b"

	if d.MetaString("name") != "Tech" {
		t.Errorf("clone mutated original metadata: %q", d.MetaString("name"))
	}
	if d.Tags[0] != "a" {
		t.Errorf("clone mutated original tags: %v", d.Tags)
	}
}

func TestDocumentMetaIsNull(t *testing.T) {
	d := NewDocument("news", "news")
	if d.MetaIsNull("authorId") {
		t.Error("absent key reported as null")
	}
	d.SetMeta("authorId", nil)
	if !d.MetaIsNull("authorId") {
		t.Error("explicit null not reported")
	}
	if d.MetaString("authorId") != "" {
		t.Errorf("MetaString on null = %q", d.MetaString("authorId"))
	}
}

func TestDocumentForeignKeysRoundTrip(t *testing.T) {
	d := NewDocument("news", "news")
	d.SetForeignKeys(map[string]ForeignKey{
		"categoryId": {TargetCollection: "categories", OnDelete: PolicyRestrict},
		"authorId":   {TargetCollection: "users", OnDelete: PolicySetNull},
	})

	// Typed form, before persisting.
	fks := d.ForeignKeys()
	if len(fks) != 2 || fks["categoryId"].OnDelete != PolicyRestrict {
		t.Fatalf("typed form = %+v", fks)
	}

	// Decoded-JSON form, after a marshal/unmarshal cycle.
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	loaded := &Document{}
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	fks = loaded.ForeignKeys()
	if len(fks) != 2 {
		t.Fatalf("decoded form = %+v", fks)
	}
	if fks["authorId"].TargetCollection != "users" || fks["authorId"].OnDelete != PolicySetNull {
		t.Errorf("authorId declaration = %+v", fks["authorId"])
	}
}

func TestDocumentForeignKeysAbsent(t *testing.T) {
	d := NewDocument("usr", "user")
	if fks := d.ForeignKeys(); fks != nil {
		t.Errorf("ForeignKeys = %+v, want nil", fks)
	}
}
