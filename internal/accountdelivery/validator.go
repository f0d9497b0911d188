package accountdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/errorspkg"
	"github.com/go-petr/account-api/pkg/validatepkg"
)

// Custom validation tags used in request bindings.
const (
	TagAccountName  = "accountname"
	TagAccountEmail = "accountemail"
)

// RegisterValidators registers account validation tags on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(TagAccountName, validatepkg.ValidName); err != nil {
		return fmt.Errorf("register %s validator: %w", TagAccountName, err)
	}

	if err := v.RegisterValidation(TagAccountEmail, validatepkg.ValidEmail); err != nil {
		return fmt.Errorf("register %s validator: %w", TagAccountEmail, err)
	}

	return nil
}

// Messages of the update payload checks.
const (
	msgNameLen  = "Name must be at least 2 characters long"
	msgEmailFmt = "Invalid email format"
)

// parseUpdate decodes an update payload and checks the values of the known keys.
//
// keys holds the raw top level members of the payload. Unknown keys are ignored.
// Column lengths are left to the service, which checks them on the escaped values.
func parseUpdate(keys map[string]json.RawMessage) (domain.UpdateAccountParams, error) {
	var params domain.UpdateAccountParams

	for _, field := range []struct {
		key       string
		label     string
		nullable  bool
		dst       *domain.Optional[string]
		checkFunc func(string) error
	}{
		{
			key:   "name",
			label: "Name",
			dst:   &params.Name,
			checkFunc: func(s string) error {
				if !validatepkg.Name(s) {
					return errorspkg.NewValidationError("name", msgNameLen)
				}
				return nil
			},
		},
		{
			key:   "email",
			label: "Email",
			dst:   &params.Email,
			checkFunc: func(s string) error {
				if !validatepkg.Email(s) {
					return errorspkg.NewValidationError("email", msgEmailFmt)
				}
				return nil
			},
		},
		{
			key:      "phone",
			label:    "Phone",
			nullable: true,
			dst:      &params.Phone,
		},
	} {
		raw, ok := keys[field.key]
		if !ok {
			continue
		}

		raw = bytes.TrimSpace(raw)

		if bytes.Equal(raw, []byte("null")) {
			if !field.nullable {
				return params, errorspkg.NewValidationError(field.key, field.label+" cannot be null")
			}

			*field.dst = domain.Null[string]()

			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return params, errorspkg.NewValidationError(field.key, "Invalid value for field "+field.key)
		}

		if field.checkFunc != nil {
			if err := field.checkFunc(s); err != nil {
				return params, err
			}
		}

		*field.dst = domain.Some(s)
	}

	return params, nil
}
