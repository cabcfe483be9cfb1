package model

import "database/sql"

// Appointment ("turno") is a scheduled date/time entry optionally tied to a
// customer. Start is the combined "YYYY-MM-DD HH:MM" value; the customer
// reference goes null when the customer is deleted.
type Appointment struct {
	ID         int64         `db:"id" json:"id"`
	CustomerID sql.NullInt64 `db:"cliente_id" json:"customer_id"`
	Start      string        `db:"inicio" json:"start"`
	Reason     string        `db:"motivo" json:"reason"`
	CreatedAt  string        `db:"created_at" json:"created_at"`

	CustomerFirstName sql.NullString `db:"nombre" json:"customer_first_name"`
	CustomerLastName  sql.NullString `db:"apellido" json:"customer_last_name"`
	CustomerEmail     sql.NullString `db:"email" json:"customer_email"`
}

// AppointmentPatch mirrors CustomerPatch for turnos. CustomerID is tri-state:
// nil leaves the reference alone, Valid=false clears it, Valid=true repoints it.
type AppointmentPatch struct {
	CustomerID *sql.NullInt64 `json:"customer_id"`
	Start      *string        `json:"start"`
	Reason     *string        `json:"reason"`
}

func (p AppointmentPatch) Empty() bool {
	return p.CustomerID == nil && p.Start == nil && p.Reason == nil
}
