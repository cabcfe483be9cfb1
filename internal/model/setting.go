package model

type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Keys under which SMTP delivery settings are stored.
const (
	SettingSMTPHost = "SMTP_HOST"
	SettingSMTPPort = "SMTP_PORT"
	SettingSMTPUser = "SMTP_USER"
	SettingSMTPPass = "SMTP_PASS"
	SettingSMTPFrom = "SMTP_FROM"
)
