package repository

import (
	"context"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/jmoiron/sqlx"
)

type NotesRepository interface {
	// Add attaches a note to an existing customer; a dangling id surfaces
	// as ErrMissingCustomer.
	Add(ctx context.Context, customerID int64, content string) (int64, error)
	// List returns notes newest-first, joined with the owning customer.
	// A nil customerID means all customers.
	List(ctx context.Context, customerID *int64) ([]model.Note, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type NotesRepositoryImpl struct {
	db *sqlx.DB
}

func NewNotesRepository(db *sqlx.DB) *NotesRepositoryImpl {
	return &NotesRepositoryImpl{db: db}
}

var _ NotesRepository = (*NotesRepositoryImpl)(nil)

func (r *NotesRepositoryImpl) Add(ctx context.Context, customerID int64, content string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notas (cliente_id, contenido, created_at) VALUES (?, ?, ?)
	`, customerID, strings.TrimSpace(content), nowStamp())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *NotesRepositoryImpl) List(ctx context.Context, customerID *int64) ([]model.Note, error) {
	query := `
		SELECT n.id, n.cliente_id, n.contenido, n.created_at,
		       c.nombre, c.apellido, c.email
		  FROM notas n
		  JOIN clientes c ON c.id = n.cliente_id
	`
	var args []any
	if customerID != nil {
		query += " WHERE n.cliente_id = ?"
		args = append(args, *customerID)
	}
	query += " ORDER BY n.created_at DESC, n.id DESC"

	notes := []model.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NotesRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notas WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *NotesRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM notas`); err != nil {
		return 0, err
	}
	return n, nil
}
