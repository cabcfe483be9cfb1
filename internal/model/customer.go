package model

type Customer struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"nombre" json:"first_name"`
	LastName  string `db:"apellido" json:"last_name"`
	Phone     string `db:"telefono_e164" json:"phone"` // E.164
	Email     string `db:"email" json:"email"`         // unique, lower-cased
	Active    bool   `db:"activo" json:"active"`
	Notes     string `db:"notas" json:"notes"`
	CreatedAt string `db:"created_at" json:"created_at"` // ISO-8601, second precision
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// CustomerPatch carries the optional fields of a sparse update. Nil fields
// are left untouched; updated_at is always refreshed.
type CustomerPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
	Notes     *string `json:"notes"`
}

func (p CustomerPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil &&
		p.Email == nil && p.Active == nil && p.Notes == nil
}
