package repository

import (
	"context"
	"testing"
)

func TestSettingsUpsert(t *testing.T) {
	dbx := setup(t)
	repo := NewSettingsRepository(dbx)
	ctx := context.Background()

	if err := repo.Set(ctx, "SMTP_HOST", "smtp.example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "SMTP_PORT", "587"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// replace existing key
	if err := repo.Set(ctx, "SMTP_HOST", "mail.example.com"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 settings, got %d", len(all))
	}
	if all["SMTP_HOST"] != "mail.example.com" {
		t.Errorf("SMTP_HOST not replaced: %q", all["SMTP_HOST"])
	}
	if all["SMTP_PORT"] != "587" {
		t.Errorf("SMTP_PORT: %q", all["SMTP_PORT"])
	}
}
