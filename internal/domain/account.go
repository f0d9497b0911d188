// Package domain provides defenitions of all entities.
package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailAlreadyExists indicates that another account already uses the given email.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Account holds the contact record of a single person.
type Account struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      *string   `json:"phone" db:"phone"`
	DateJoined time.Time `json:"date_joined" db:"date_joined"`
}

// CreateAccountParams contains the input parameters of the account creation.
type CreateAccountParams struct {
	Name  string
	Email string
	Phone *string
}

// UpdateAccountParams contains the fields to overwrite on an existing account.
//
// Only the fields with Set equal to true are applied.
type UpdateAccountParams struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Phone Optional[string] `json:"phone"`
}

// Empty reports whether no field is going to be changed.
func (p UpdateAccountParams) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Phone.Set
}

// Optional is a value that keeps apart an omitted JSON key and an explicit null.
type Optional[T any] struct {
	// Set is true when the key was present in the payload.
	Set bool
	// Value is nil when the key was present with a null value.
	Value *T
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true

	if string(b) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	o.Value = &v

	return nil
}
