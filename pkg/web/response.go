// Package web defines common components for a web application.
package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// ErrorMsg wraps a given message into json friendly struct.
func ErrorMsg(msg string) JSONError {
	return JSONError{Error: msg}
}

// Message holds a plain informational response.
type Message struct {
	Message string `json:"message"`
}

// GetErrorMsg returns a human readable description of the failed validation rule.
func GetErrorMsg(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " field is required"
	case "accountname":
		return fmt.Sprintf("%s must be at least 2 characters long", field)
	case "accountemail", "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	}

	return field + " is invalid"
}
