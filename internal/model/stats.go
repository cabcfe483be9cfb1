package model

// Stats backs the landing dashboard.
type Stats struct {
	Customers int  `json:"customers"`
	Active    int  `json:"active"`
	Inactive  int  `json:"inactive"`
	Notes     int  `json:"notes"`
	MailReady bool `json:"mail_ready"`
}
