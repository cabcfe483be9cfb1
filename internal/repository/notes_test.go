package repository

import (
	"context"
	"errors"
	"testing"
)

func TestNotesLifecycle(t *testing.T) {
	dbx := setup(t)
	customers := NewCustomersRepository(dbx)
	repo := NewNotesRepository(dbx)
	ctx := context.Background()

	id := mustCreate(t, customers, ana())

	other := ana()
	other.Email = "bob@example.com"
	otherID := mustCreate(t, customers, other)

	for _, content := range []string{"primera", "segunda"} {
		if _, err := repo.Add(ctx, id, content); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := repo.Add(ctx, otherID, "ajena"); err != nil {
		t.Fatalf("add: %v", err)
	}

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 notes, got %d", len(all))
	}
	// newest first
	if all[0].Content != "ajena" {
		t.Errorf("first row should be the newest, got %q", all[0].Content)
	}

	mine, err := repo.List(ctx, &id)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("want 2 notes for customer, got %d", len(mine))
	}
	for _, n := range mine {
		if n.CustomerID != id {
			t.Errorf("foreign note in filtered listing: %+v", n)
		}
		if n.CustomerEmail != "ana@example.com" {
			t.Errorf("joined email: %q", n.CustomerEmail)
		}
	}

	ok, err := repo.Delete(ctx, mine[0].ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("want 2 remaining, got %d", n)
	}
}

func TestNoteRequiresCustomer(t *testing.T) {
	dbx := setup(t)
	repo := NewNotesRepository(dbx)

	if _, err := repo.Add(context.Background(), 999, "huérfana"); !errors.Is(err, ErrMissingCustomer) {
		t.Fatalf("want ErrMissingCustomer, got %v", err)
	}
}
