package repository

import (
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateEmail is returned when an insert or update collides with
// another customer's email. Distinct from generic invalid input so callers
// can present a specific message.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrMissingCustomer is returned when a note or appointment references a
// customer id that does not exist.
var ErrMissingCustomer = errors.New("customer does not exist")

// mapConstraint translates driver constraint violations into the sentinel
// errors above; anything else passes through untouched.
func mapConstraint(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return err
	}
	switch serr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return ErrDuplicateEmail
	case sqlite3.ErrConstraintForeignKey:
		return ErrMissingCustomer
	}
	return err
}

// nowStamp matches the ISO-8601 second-precision timestamps the schema stores.
func nowStamp() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
