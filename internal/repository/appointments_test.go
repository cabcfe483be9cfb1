package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
)

func TestAppointmentTimeFilters(t *testing.T) {
	dbx := setup(t)
	repo := NewAppointmentsRepository(dbx)
	ctx := context.Background()

	ref := "2025-06-15 12:00"
	starts := []string{
		"2025-06-14 09:00", // past
		"2025-06-15 11:59", // past
		"2025-06-15 12:00", // future (>= ref)
		"2025-07-01 08:30", // future
	}
	for _, s := range starts {
		if _, err := repo.Add(ctx, nil, s, "motivo "+s); err != nil {
			t.Fatalf("add %s: %v", s, err)
		}
	}

	future, err := repo.List(ctx, model.TimeFuture, ref)
	if err != nil {
		t.Fatalf("list future: %v", err)
	}
	if len(future) != 2 {
		t.Fatalf("future: want 2, got %d", len(future))
	}
	if !sort.SliceIsSorted(future, func(i, j int) bool { return future[i].Start < future[j].Start }) {
		t.Error("future listing not ascending")
	}
	for _, a := range future {
		if a.Start < ref {
			t.Errorf("past turno %s in future listing", a.Start)
		}
	}

	past, err := repo.List(ctx, model.TimePast, ref)
	if err != nil {
		t.Fatalf("list past: %v", err)
	}
	if len(past) != 2 {
		t.Fatalf("past: want 2, got %d", len(past))
	}
	if !sort.SliceIsSorted(past, func(i, j int) bool { return past[i].Start > past[j].Start }) {
		t.Error("past listing not descending")
	}
	for _, a := range past {
		if a.Start >= ref {
			t.Errorf("future turno %s in past listing", a.Start)
		}
	}

	all, err := repo.List(ctx, model.TimeAll, ref)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != len(starts) {
		t.Errorf("all: want %d, got %d", len(starts), len(all))
	}
}

func TestAppointmentJoinsCustomer(t *testing.T) {
	dbx := setup(t)
	customers := NewCustomersRepository(dbx)
	repo := NewAppointmentsRepository(dbx)
	ctx := context.Background()

	custID := mustCreate(t, customers, ana())
	id, err := repo.Add(ctx, &custID, "2030-05-05 15:30", "seguimiento")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("turno not found")
	}
	if !got.CustomerID.Valid || got.CustomerID.Int64 != custID {
		t.Errorf("customer id: %+v", got.CustomerID)
	}
	if got.CustomerEmail.String != "ana@example.com" || got.CustomerLastName.String != "Gómez" {
		t.Errorf("joined customer fields: %+v", got)
	}
}

func TestAppointmentUpdate(t *testing.T) {
	dbx := setup(t)
	repo := NewAppointmentsRepository(dbx)
	customers := NewCustomersRepository(dbx)
	ctx := context.Background()

	custID := mustCreate(t, customers, ana())
	id, err := repo.Add(ctx, &custID, "2030-05-05 15:30", "seguimiento")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// sparse: only the reason changes
	reason := "control anual"
	ok, err := repo.Update(ctx, id, model.AppointmentPatch{Reason: &reason})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ok {
		t.Fatal("no rows affected")
	}
	got, _ := repo.Get(ctx, id)
	if got.Reason != reason || got.Start != "2030-05-05 15:30" || !got.CustomerID.Valid {
		t.Errorf("after reason patch: %+v", got)
	}

	// clear the customer reference explicitly
	ok, err = repo.Update(ctx, id, model.AppointmentPatch{CustomerID: &sql.NullInt64{}})
	if err != nil {
		t.Fatalf("clear customer: %v", err)
	}
	if !ok {
		t.Fatal("no rows affected")
	}
	got, _ = repo.Get(ctx, id)
	if got.CustomerID.Valid {
		t.Errorf("customer reference not cleared: %+v", got.CustomerID)
	}

	// empty patch is a no-op
	ok, err = repo.Update(ctx, id, model.AppointmentPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if ok {
		t.Error("empty patch must report no change")
	}
}

func TestAppointmentMissingCustomer(t *testing.T) {
	dbx := setup(t)
	repo := NewAppointmentsRepository(dbx)
	ctx := context.Background()

	missing := int64(424242)
	if _, err := repo.Add(ctx, &missing, "2030-01-01 10:00", "x"); !errors.Is(err, ErrMissingCustomer) {
		t.Fatalf("want ErrMissingCustomer, got %v", err)
	}
}

func TestAppointmentDelete(t *testing.T) {
	dbx := setup(t)
	repo := NewAppointmentsRepository(dbx)
	ctx := context.Background()

	id, err := repo.Add(ctx, nil, "2030-01-01 10:00", "x")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	ok, err := repo.Delete(ctx, id)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(ctx, id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Error("second delete should report no rows")
	}
}
