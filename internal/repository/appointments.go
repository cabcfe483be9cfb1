package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/jmoiron/sqlx"
)

type AppointmentsRepository interface {
	// Add inserts a turno; customerID may be nil. No overlap checking is
	// performed, multiple turnos may share a slot.
	Add(ctx context.Context, customerID *int64, start, reason string) (int64, error)
	// List applies the time filter against the reference time now
	// ("YYYY-MM-DD HH:MM"): future is inicio >= now ascending, past is
	// inicio < now descending, all is ascending.
	List(ctx context.Context, f model.TimeFilter, now string) ([]model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Update(ctx context.Context, id int64, p model.AppointmentPatch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type AppointmentsRepositoryImpl struct {
	db *sqlx.DB
}

func NewAppointmentsRepository(db *sqlx.DB) *AppointmentsRepositoryImpl {
	return &AppointmentsRepositoryImpl{db: db}
}

var _ AppointmentsRepository = (*AppointmentsRepositoryImpl)(nil)

const appointmentSelect = `
	SELECT t.id, t.cliente_id, t.inicio, t.motivo, t.created_at,
	       c.nombre, c.apellido, c.email
	  FROM turnos t
	  LEFT JOIN clientes c ON c.id = t.cliente_id
`

func (r *AppointmentsRepositoryImpl) Add(ctx context.Context, customerID *int64, start, reason string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO turnos (cliente_id, inicio, motivo, created_at) VALUES (?, ?, ?, ?)
	`, customerID, start, strings.TrimSpace(reason), nowStamp())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *AppointmentsRepositoryImpl) List(ctx context.Context, f model.TimeFilter, now string) ([]model.Appointment, error) {
	query := appointmentSelect
	var args []any
	switch f {
	case model.TimeFuture:
		query += " WHERE t.inicio >= ? ORDER BY t.inicio ASC"
		args = append(args, now)
	case model.TimePast:
		query += " WHERE t.inicio < ? ORDER BY t.inicio DESC"
		args = append(args, now)
	default:
		query += " ORDER BY t.inicio ASC"
	}

	turnos := []model.Appointment{}
	if err := r.db.SelectContext(ctx, &turnos, query, args...); err != nil {
		return nil, err
	}
	return turnos, nil
}

func (r *AppointmentsRepositoryImpl) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var t model.Appointment
	err := r.db.GetContext(ctx, &t, appointmentSelect+" WHERE t.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *AppointmentsRepositoryImpl) Update(ctx context.Context, id int64, p model.AppointmentPatch) (bool, error) {
	if p.Empty() {
		return false, nil
	}
	var (
		sets []string
		args []any
	)
	if p.CustomerID != nil {
		sets = append(sets, "cliente_id = ?")
		args = append(args, *p.CustomerID)
	}
	if p.Start != nil {
		sets = append(sets, "inicio = ?")
		args = append(args, *p.Start)
	}
	if p.Reason != nil {
		sets = append(sets, "motivo = ?")
		args = append(args, strings.TrimSpace(*p.Reason))
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE turnos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, mapConstraint(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *AppointmentsRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM turnos WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
