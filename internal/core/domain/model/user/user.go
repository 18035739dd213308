package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not created via NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrFullNameIsRequired is returned for an empty or blank full name.
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("full name")
)

// Profile holds the mutable contact details of a user.
type Profile struct {
	Username string
	FullName string
	Phone    kernel.Phone
	Email    *kernel.Email
	Company  *string
}

// User is a registered participant of the freight exchange.
type User struct {
	id           int64
	username     string
	fullName     string
	phone        kernel.Phone
	email        *kernel.Email
	company      *string
	role         kernel.Role
	registeredAt time.Time
	guard        guard.ConstructorGuard
}

// NewUser registers a new participant. registeredAt is normally time.Now().
func NewUser(id int64, role kernel.Role, profile Profile, registeredAt time.Time) (*User, error) {
	u := &User{
		registeredAt: registeredAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
		u.setFullName(profile.FullName),
		u.setPhone(profile.Phone),
		u.setEmail(profile.Email),
	); err != nil {
		return nil, err
	}
	u.username = strings.TrimSpace(profile.Username)
	u.company = normalizeOptional(profile.Company)

	return u, nil
}

// RestoreUser rebuilds a user loaded from storage. It runs the same checks as
// NewUser so a corrupted row surfaces as an error instead of a half-valid aggregate.
func RestoreUser(id int64, role kernel.Role, profile Profile, registeredAt time.Time) (*User, error) {
	return NewUser(id, role, profile, registeredAt)
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() int64 {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) Phone() kernel.Phone {
	return u.phone
}

func (u *User) Email() *kernel.Email {
	return u.email
}

func (u *User) Company() *string {
	return u.company
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) RegisteredAt() time.Time {
	return u.registeredAt
}

func (u *User) IsSender() bool {
	return u.role == kernel.RoleSender
}

func (u *User) IsCarrier() bool {
	return u.role == kernel.RoleCarrier
}

// Profile returns a copy of the current contact details.
func (u *User) Profile() Profile {
	return Profile{
		Username: u.username,
		FullName: u.fullName,
		Phone:    u.phone,
		Email:    u.email,
		Company:  u.company,
	}
}

// ChangeFullName replaces the display name.
func (u *User) ChangeFullName(name string) error {
	return u.setFullName(name)
}

// ChangePhone replaces the contact phone.
func (u *User) ChangePhone(phone kernel.Phone) error {
	return u.setPhone(phone)
}

// ChangeEmail replaces the email; nil clears it.
func (u *User) ChangeEmail(email *kernel.Email) error {
	return u.setEmail(email)
}

// ChangeCompany replaces the company; nil or blank clears it.
func (u *User) ChangeCompany(company *string) {
	u.company = normalizeOptional(company)
}

func (u *User) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not a positive id", id))
	}
	u.id = id
	return nil
}

func (u *User) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFullNameIsRequired
	}
	u.fullName = name
	return nil
}

func (u *User) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	u.phone = phone
	return nil
}

func (u *User) setEmail(email *kernel.Email) error {
	if email == nil {
		u.email = nil
		return nil
	}
	if err := email.Validate(); err != nil {
		return err
	}
	e := *email
	u.email = &e
	return nil
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
