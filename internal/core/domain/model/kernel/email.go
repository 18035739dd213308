package kernel

import (
	"fmt"
	"strings"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when an Email was not created via NewEmail.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

// Email is a validated e-mail address.
type Email struct {
	value string
	guard guard.ConstructorGuard
}

func NewEmail(raw string) (Email, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if !IsValidEmail(raw) {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not of the form local@domain.tld", raw))
	}
	return Email{value: raw, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

func (e Email) String() string {
	return e.value
}
