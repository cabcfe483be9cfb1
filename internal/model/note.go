package model

// Note is a free-form annotation attached to a customer. Listing joins the
// owning customer so callers can render a name without a second query.
type Note struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"cliente_id" json:"customer_id"`
	Content    string `db:"contenido" json:"content"`
	CreatedAt  string `db:"created_at" json:"created_at"`

	CustomerFirstName string `db:"nombre" json:"customer_first_name"`
	CustomerLastName  string `db:"apellido" json:"customer_last_name"`
	CustomerEmail     string `db:"email" json:"customer_email"`
}
