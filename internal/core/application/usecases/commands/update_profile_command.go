package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// ProfileField is the profile attribute a user chose to edit.
type ProfileField string

const (
	ProfileFieldName    ProfileField = "name"
	ProfileFieldPhone   ProfileField = "phone"
	ProfileFieldEmail   ProfileField = "email"
	ProfileFieldCompany ProfileField = "company"
)

func ParseProfileField(s string) (ProfileField, error) {
	switch f := ProfileField(s); f {
	case ProfileFieldName, ProfileFieldPhone, ProfileFieldEmail, ProfileFieldCompany:
		return f, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("profile field", fmt.Errorf("%q is not editable", s))
	}
}

// UpdateProfileCommand replaces one profile attribute. The raw value is
// validated by the constructor with the same rules as registration.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	field   ProfileField
	name    string
	phone   kernel.Phone
	email   kernel.Email
	company string

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(userID int64, field ProfileField, raw string) (UpdateProfileCommand, error) {
	cmd := UpdateProfileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if userID <= 0 {
		return UpdateProfileCommand{}, errs.NewValueIsRequiredError("user id")
	}
	cmd.userID = userID

	if err := cmd.setValue(field, raw); err != nil {
		return UpdateProfileCommand{}, err
	}

	return cmd, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) UserID() int64 {
	return c.userID
}

func (c UpdateProfileCommand) Field() ProfileField {
	return c.field
}

func (c *UpdateProfileCommand) setValue(field ProfileField, raw string) error {
	raw = strings.TrimSpace(raw)

	switch field {
	case ProfileFieldName:
		if raw == "" {
			return errs.NewValueIsRequiredError("full name")
		}
		c.name = raw
	case ProfileFieldPhone:
		phone, err := kernel.NewPhone(raw)
		if err != nil {
			return err
		}
		c.phone = phone
	case ProfileFieldEmail:
		email, err := kernel.NewEmail(raw)
		if err != nil {
			return err
		}
		c.email = email
	case ProfileFieldCompany:
		if raw == "" {
			return errs.NewValueIsRequiredError("company")
		}
		c.company = raw
	default:
		_, err := ParseProfileField(string(field))
		return err
	}

	c.field = field
	return nil
}
