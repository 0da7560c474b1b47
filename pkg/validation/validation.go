// Package validation wraps go-playground/validator with the bank's field
// rules: NIC shape, 10-digit phone numbers, email, and required free text.
// Validators are pure; callers re-prompt on failure.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidField wraps every validation failure so callers can match the
// whole class with errors.Is.
var ErrInvalidField = errors.New("invalid field value")

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Field names a single validatable profile attribute.
type Field string

const (
	FieldName    Field = "name"
	FieldNIC     Field = "nic"
	FieldPhone   Field = "phone"
	FieldEmail   Field = "email"
	FieldAddress Field = "address"
)

// ProfileInput carries the raw fields collected for a new customer profile.
// Free-text fields exclude the record separator (0x7C is "|") so an accepted
// value can never corrupt the persisted line format.
type ProfileInput struct {
	Name    string `validate:"required,excludesall=0x7C"`
	NIC     string `validate:"required,nic"`
	Phone   string `validate:"required,phone"`
	Email   string `validate:"required,email"`
	Address string `validate:"required,excludesall=0x7C"`
}

// Validator validates profile fields.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom nic and phone rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for blank tags or nil funcs.
	_ = v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return customer.IsValidNIC(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// ProfileInput validates all fields of a new profile and normalizes the name
// to upper case in place.
func (va *Validator) ProfileInput(in *ProfileInput) error {
	in.Name = strings.ToUpper(strings.TrimSpace(in.Name))
	in.NIC = strings.TrimSpace(in.NIC)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if err := va.v.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidField, describe(err))
	}
	return nil
}

// Normalize validates a single field value and returns its normalized form
// (names are upper-cased). Used by the field-by-field profile update.
func (va *Validator) Normalize(field Field, value string) (string, error) {
	value = strings.TrimSpace(value)
	var tag string
	switch field {
	case FieldName:
		value = strings.ToUpper(value)
		tag = "required,excludesall=0x7C"
	case FieldNIC:
		tag = "required,nic"
	case FieldPhone:
		tag = "required,phone"
	case FieldEmail:
		tag = "required,email"
	case FieldAddress:
		tag = "required,excludesall=0x7C"
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidField, field)
	}
	if err := va.v.Var(value, tag); err != nil {
		return "", fmt.Errorf("%w: %s %s", ErrInvalidField, field, describe(err))
	}
	return value, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "nic":
			reasons = append(reasons, "NIC must be 9 digits followed by V/X, or a 12-digit number")
		case "phone":
			reasons = append(reasons, "phone number must be exactly 10 digits")
		case "email":
			reasons = append(reasons, "email address is not valid")
		case "excludesall":
			reasons = append(reasons, fmt.Sprintf("%s must not contain the | character", strings.ToLower(fe.Field())))
		default:
			reasons = append(reasons, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(reasons, "; ")
}
