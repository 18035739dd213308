package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
)

// UpdateProfileCommandHandler applies a single profile edit. The role is never
// touched.
type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = cmd.apply(u); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func (c UpdateProfileCommand) apply(u *user.User) error {
	switch c.field {
	case ProfileFieldName:
		return u.ChangeFullName(c.name)
	case ProfileFieldPhone:
		return u.ChangePhone(c.phone)
	case ProfileFieldEmail:
		email := c.email
		return u.ChangeEmail(&email)
	case ProfileFieldCompany:
		company := c.company
		u.ChangeCompany(&company)
		return nil
	default:
		_, err := ParseProfileField(string(c.field))
		return err
	}
}
