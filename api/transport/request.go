package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/users/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeFields binds the exact keys of a JSON object to their targets. Keys
// differing only in case count as unknown and are ignored.
func decodeFields(data []byte, fields map[string]interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}
	return nil
}

// CreateUserRequest is the POST /api/users body. Unknown keys are ignored and
// an empty id lets the store generate one.
type CreateUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Role  string `json:"role"`
}

func (r *CreateUserRequest) UnmarshalJSON(data []byte) error {
	return decodeFields(data, map[string]interface{}{
		"id":    &r.ID,
		"name":  &r.Name,
		"email": &r.Email,
		"role":  &r.Role,
	})
}

func (r CreateUserRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, domain.ErrMissingFields.Message, err)
	}
	return nil
}

// UpdateUserRequest is the PUT /api/users/{id} body. Only name, email and role
// are read; absent keys leave the stored value untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Email *string `json:"email" validate:"omitnil,min=1"`
	Role  *string `json:"role"`
}

func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	return decodeFields(data, map[string]interface{}{
		"name":  &r.Name,
		"email": &r.Email,
		"role":  &r.Role,
	})
}

func (r UpdateUserRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "name and email must not be empty", err)
	}
	return nil
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email, Role: r.Role}
}

// ValidationDetail lists failing fields as "field rule" pairs.
func ValidationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ""
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
