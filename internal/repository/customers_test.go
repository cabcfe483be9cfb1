package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Octaviomaldonado/GestorClientes/internal/db"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/jmoiron/sqlx"
)

func setup(t *testing.T) *sqlx.DB {
	t.Helper()
	// single connection so the in-memory database is shared
	dbx, err := db.NewSQLiteConnection(":memory:", db.SQLiteOpts{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(dbx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = dbx.Close() })
	return dbx
}

func mustCreate(t *testing.T, repo CustomersRepository, c model.Customer) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("create %s: %v", c.Email, err)
	}
	return id
}

func ana() model.Customer {
	return model.Customer{
		FirstName: "Ana",
		LastName:  "Gómez",
		Phone:     "+14155552671",
		Email:     "ana@example.com",
		Active:    true,
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	mustCreate(t, repo, ana())

	dup := ana()
	dup.FirstName = "Otra"
	if _, err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}

	// exactly one row retains the email
	n, err := repo.Count(ctx, model.ActiveAll)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("want 1 customer, got %d", n)
	}
}

func TestListOrderAndActiveFilter(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	for _, c := range []model.Customer{
		{FirstName: "zoe", LastName: "alvarez", Phone: "+14155550001", Email: "zoe@example.com", Active: true},
		{FirstName: "Bruno", LastName: "Zapata", Phone: "+14155550002", Email: "bruno@example.com", Active: false},
		{FirstName: "ana", LastName: "Alvarez", Phone: "+14155550003", Email: "ana2@example.com", Active: true},
	} {
		mustCreate(t, repo, c)
	}

	all, err := repo.List(ctx, model.ActiveAll, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 rows, got %d", len(all))
	}
	// case-insensitive apellido, nombre ordering
	wantEmails := []string{"ana2@example.com", "zoe@example.com", "bruno@example.com"}
	for i, w := range wantEmails {
		if all[i].Email != w {
			t.Errorf("row %d: got %s, want %s", i, all[i].Email, w)
		}
	}

	active, err := repo.List(ctx, model.ActiveOnly, "")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) >= len(all) {
		t.Errorf("active-only should be a strict subset here: %d vs %d", len(active), len(all))
	}
	for _, c := range active {
		if !c.Active {
			t.Errorf("inactive row %s in active-only listing", c.Email)
		}
	}

	found, err := repo.List(ctx, model.ActiveAll, "ZAP")
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if len(found) != 1 || found[0].Email != "bruno@example.com" {
		t.Errorf("search ZAP: got %+v", found)
	}
}

func TestGetAbsent(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	c, err := repo.GetByID(ctx, 99)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if c != nil {
		t.Errorf("want nil for absent id, got %+v", c)
	}
	c, err = repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if c != nil {
		t.Errorf("want nil for absent email, got %+v", c)
	}
}

func TestSparseUpdate(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	id := mustCreate(t, repo, ana())
	before, _ := repo.GetByID(ctx, id)

	notes := "VIP"
	ok, err := repo.UpdateByID(ctx, id, model.CustomerPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ok {
		t.Fatal("update reported no rows affected")
	}

	after, _ := repo.GetByID(ctx, id)
	if after.Notes != "VIP" {
		t.Errorf("notes not updated: %q", after.Notes)
	}
	if after.FirstName != before.FirstName || after.LastName != before.LastName ||
		after.Phone != before.Phone || after.Email != before.Email || after.Active != before.Active {
		t.Errorf("untouched fields changed: before=%+v after=%+v", before, after)
	}
	if after.CreatedAt != before.CreatedAt {
		t.Errorf("created_at changed: %s -> %s", before.CreatedAt, after.CreatedAt)
	}
}

func TestEmptyPatchIsNoop(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	id := mustCreate(t, repo, ana())
	ok, err := repo.UpdateByID(ctx, id, model.CustomerPatch{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if ok {
		t.Error("empty patch must report no change")
	}
}

func TestUpdateEmailCollision(t *testing.T) {
	dbx := setup(t)
	repo := NewCustomersRepository(dbx)
	ctx := context.Background()

	mustCreate(t, repo, ana())
	other := ana()
	other.Email = "bob@example.com"
	id := mustCreate(t, repo, other)

	taken := "ana@example.com"
	if _, err := repo.UpdateByID(ctx, id, model.CustomerPatch{Email: &taken}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestDeleteCascadesAndNulls(t *testing.T) {
	dbx := setup(t)
	customers := NewCustomersRepository(dbx)
	notes := NewNotesRepository(dbx)
	turnos := NewAppointmentsRepository(dbx)
	ctx := context.Background()

	id := mustCreate(t, customers, ana())
	if _, err := notes.Add(ctx, id, "primera nota"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	turnoID, err := turnos.Add(ctx, &id, "2030-01-01 10:00", "control")
	if err != nil {
		t.Fatalf("add turno: %v", err)
	}

	ok, err := customers.DeleteByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatal("delete reported no rows")
	}

	remaining, err := notes.List(ctx, nil)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("notes not cascaded: %d left", len(remaining))
	}

	turno, err := turnos.Get(ctx, turnoID)
	if err != nil {
		t.Fatalf("get turno: %v", err)
	}
	if turno == nil {
		t.Fatal("turno was deleted, should survive with null customer")
	}
	if turno.CustomerID.Valid {
		t.Errorf("turno customer reference not nulled: %+v", turno.CustomerID)
	}
}
