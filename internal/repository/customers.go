package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/jmoiron/sqlx"
)

type CustomersRepository interface {
	Create(ctx context.Context, c model.Customer) (int64, error)
	List(ctx context.Context, f model.ActiveFilter, q string) ([]model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	UpdateByID(ctx context.Context, id int64, p model.CustomerPatch) (bool, error)
	UpdateByEmail(ctx context.Context, email string, p model.CustomerPatch) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, f model.ActiveFilter) (int, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

const customerColumns = `id, nombre, apellido, telefono_e164, email, activo, notas, created_at, updated_at`

// Create inserts a new customer with fresh timestamps and returns its id.
// A unique-index collision on email surfaces as ErrDuplicateEmail.
func (r *CustomersRepositoryImpl) Create(ctx context.Context, c model.Customer) (int64, error) {
	now := nowStamp()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO clientes (nombre, apellido, telefono_e164, email, activo, notas, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.FirstName, c.LastName, c.Phone, c.Email, c.Active, c.Notes, now, now)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func activeWhere(f model.ActiveFilter) string {
	switch f {
	case model.ActiveOnly:
		return "activo = 1"
	case model.Inactive:
		return "activo = 0"
	}
	return ""
}

// List returns customers matching the tri-state active filter and, when q is
// non-empty, a case-insensitive substring search over name, email and phone.
// Ordered by last name then first name, case-insensitively.
func (r *CustomersRepositoryImpl) List(ctx context.Context, f model.ActiveFilter, q string) ([]model.Customer, error) {
	var (
		where []string
		args  []any
	)
	if w := activeWhere(f); w != "" {
		where = append(where, w)
	}
	if q = strings.TrimSpace(q); q != "" {
		pat := "%" + strings.ToLower(q) + "%"
		where = append(where, `(lower(nombre) LIKE ? OR lower(apellido) LIKE ? OR lower(email) LIKE ? OR telefono_e164 LIKE ?)`)
		args = append(args, pat, pat, pat, pat)
	}

	query := `SELECT ` + customerColumns + ` FROM clientes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY apellido COLLATE NOCASE, nombre COLLATE NOCASE`

	customers := []model.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *CustomersRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.getWhere(ctx, "email = ?", email)
}

func (r *CustomersRepositoryImpl) getWhere(ctx context.Context, cond string, arg any) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT `+customerColumns+` FROM clientes WHERE `+cond+` LIMIT 1
	`, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// patchSet assembles the dynamic SET list for a sparse update. updated_at is
// always refreshed.
func patchSet(p model.CustomerPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	if p.FirstName != nil {
		sets = append(sets, "nombre = ?")
		args = append(args, *p.FirstName)
	}
	if p.LastName != nil {
		sets = append(sets, "apellido = ?")
		args = append(args, *p.LastName)
	}
	if p.Phone != nil {
		sets = append(sets, "telefono_e164 = ?")
		args = append(args, *p.Phone)
	}
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.Active != nil {
		sets = append(sets, "activo = ?")
		args = append(args, *p.Active)
	}
	if p.Notes != nil {
		sets = append(sets, "notas = ?")
		args = append(args, *p.Notes)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, nowStamp())
	return sets, args
}

func (r *CustomersRepositoryImpl) UpdateByID(ctx context.Context, id int64, p model.CustomerPatch) (bool, error) {
	return r.updateWhere(ctx, p, "id = ?", id)
}

func (r *CustomersRepositoryImpl) UpdateByEmail(ctx context.Context, email string, p model.CustomerPatch) (bool, error) {
	return r.updateWhere(ctx, p, "email = ?", email)
}

// updateWhere applies a sparse patch; an empty patch is a no-op and reports
// no rows affected. Email collisions surface as ErrDuplicateEmail.
func (r *CustomersRepositoryImpl) updateWhere(ctx context.Context, p model.CustomerPatch, cond string, arg any) (bool, error) {
	if p.Empty() {
		return false, nil
	}
	sets, args := patchSet(p)
	args = append(args, arg)

	res, err := r.db.ExecContext(ctx,
		`UPDATE clientes SET `+strings.Join(sets, ", ")+` WHERE `+cond, args...)
	if err != nil {
		return false, mapConstraint(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteByID removes the customer; notes cascade away, turnos keep their row
// with the reference nulled (schema FK actions).
func (r *CustomersRepositoryImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return r.deleteWhere(ctx, "id = ?", id)
}

func (r *CustomersRepositoryImpl) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	return r.deleteWhere(ctx, "email = ?", email)
}

func (r *CustomersRepositoryImpl) deleteWhere(ctx context.Context, cond string, arg any) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clientes WHERE `+cond, arg)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context, f model.ActiveFilter) (int, error) {
	query := `SELECT COUNT(*) FROM clientes`
	if w := activeWhere(f); w != "" {
		query += " WHERE " + w
	}
	var n int
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, err
	}
	return n, nil
}
