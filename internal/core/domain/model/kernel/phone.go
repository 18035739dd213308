package kernel

import (
	"fmt"
	"strings"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

// ErrPhoneIsNotConstructed is returned when a Phone was not created via NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is a validated international phone number.
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

// NewPhone validates raw as "+" followed by 10 to 15 digits.
// Surrounding whitespace is ignored.
func NewPhone(raw string) (Phone, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if !IsValidPhone(raw) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q must be + followed by 10 to 15 digits", raw))
	}
	return Phone{value: raw, guard: guard.NewConstructorGuard()}, nil
}

// NewPhoneFromContact normalizes a number shared through a contact card before validating it.
func NewPhoneFromContact(raw string) (Phone, error) {
	return NewPhone(NormalizePhone(raw))
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.value
}
