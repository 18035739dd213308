package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand is the confirmed registration form.
//
// Example:
//
//	phone, _ := kernel.NewPhone("+79991234567")
//	cmd, err := NewRegisterUserCommand(tgUserID, kernel.RoleCarrier, user.Profile{
//	    FullName: "Ivan Ivanov",
//	    Phone:    phone,
//	})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	role    kernel.Role
	profile user.Profile

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID int64, role kernel.Role, profile user.Profile) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setRole(role),
		cmd.setProfile(profile),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() int64 {
	return c.userID
}

func (c RegisterUserCommand) Role() kernel.Role {
	return c.role
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

func (c *RegisterUserCommand) setUserID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("user id")
	}

	c.userID = id
	return nil
}

func (c *RegisterUserCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *RegisterUserCommand) setProfile(profile user.Profile) error {
	if err := profile.Phone.Validate(); err != nil {
		return err
	}

	c.profile = profile
	return nil
}
