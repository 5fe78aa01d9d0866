package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/annotext/spanviz/pkg/annotation"
)

func testDoc(text string) annotation.Document {
	return annotation.Document{
		Text: text,
		Entities: []annotation.Entity{
			{ID: "T1", Type: "Object", Start: 0, End: 3},
		},
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec, err := s.Create(ctx, "report", testDoc("The pump"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.ID == "" {
		t.Error("Create should assign an ID")
	}
	if rec.Name != "report" {
		t.Errorf("Name = %q, want %q", rec.Name, "report")
	}
	if rec.CreatedAt.IsZero() || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("timestamps should be set and equal: created=%v updated=%v", rec.CreatedAt, rec.UpdatedAt)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Document.Text != "The pump" {
		t.Errorf("Document.Text = %q, want %q", got.Document.Text, "The pump")
	}
	if len(got.Document.Entities) != 1 {
		t.Errorf("len(Entities) = %d, want 1", len(got.Document.Entities))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Create(ctx, "v1", testDoc("old text"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := s.Update(ctx, rec.ID, "v2", testDoc("new text"))
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != rec.ID {
		t.Errorf("Update changed ID: %q != %q", updated.ID, rec.ID)
	}
	if updated.Name != "v2" || updated.Document.Text != "new text" {
		t.Errorf("Update content not applied: name=%q text=%q", updated.Name, updated.Document.Text)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Error("Update should preserve CreatedAt")
	}
	if updated.UpdatedAt.Before(rec.UpdatedAt) {
		t.Error("Update should advance UpdatedAt")
	}

	_, err = s.Update(ctx, "nope", "x", testDoc("x"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.Create(ctx, "first", testDoc("a"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := s.Create(ctx, "second", testDoc("b"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(recs))
	}
	if recs[0].ID != second.ID || recs[1].ID != first.ID {
		t.Errorf("List order = [%s, %s], want newest first [%s, %s]",
			recs[0].Name, recs[1].Name, second.Name, first.Name)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Create(ctx, "doomed", testDoc("x"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
