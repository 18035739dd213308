package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
)

func (e *Engine) register(ctx context.Context, s *Session, in Input) (Reply, error) {
	d := &s.Registration

	switch s.Step {
	case StepRole:
		role, ok := parseRole(in)
		if !ok {
			return retry(s, "❌ Please choose your role with the buttons below."), nil
		}
		d.Role = role
		return advance(s, StepName), nil

	case StepName:
		var name string
		switch in.Kind {
		case InputSkip:
			name = strings.TrimSpace(in.DisplayName)
		case InputText:
			name = strings.TrimSpace(in.Text)
		}
		if name == "" {
			return retry(s, "❌ The name cannot be empty."), nil
		}
		d.FullName = name
		return advance(s, StepPhone), nil

	case StepPhone:
		phone, ok := parsePhone(in)
		if !ok {
			return retry(s, "❌ Invalid phone number. Enter it as +XXXXXXXXXXX or share your contact."), nil
		}
		d.Phone = phone.String()
		return advance(s, StepEmail), nil

	case StepEmail:
		switch in.Kind {
		case InputSkip:
			d.Email = nil
		case InputText:
			email, err := kernel.NewEmail(in.Text)
			if err != nil {
				return retry(s, "❌ Invalid email format. Enter a valid email or skip this step."), nil
			}
			v := email.String()
			d.Email = &v
		default:
			return retry(s, "❌ Enter an email or skip this step."), nil
		}
		return advance(s, StepCompany), nil

	case StepCompany:
		switch in.Kind {
		case InputSkip:
			d.Company = nil
		case InputText:
			d.Company = optionalText(in.Text)
		default:
			return retry(s, "❌ Enter a company name or skip this step."), nil
		}
		return toConfirmation(s, StepConfirmRegistration, d.firstMissing()), nil

	case StepConfirmRegistration:
		switch in.Kind {
		case InputConfirm:
			if missing := d.firstMissing(); missing != "" {
				return toConfirmation(s, StepConfirmRegistration, missing), nil
			}
			return e.commitRegistration(ctx, s, in.Username)
		case InputReject:
			s.Registration = RegistrationDraft{}
			reply := advance(s, StepRole)
			reply.Text = "🔄 Registration restarted.\n\n" + reply.Text
			return reply, nil
		default:
			return retry(s, "Please confirm or reject the data."), nil
		}
	}

	return Reply{}, fmt.Errorf("registration has no step %q", s.Step)
}

func (e *Engine) commitRegistration(ctx context.Context, s *Session, username string) (Reply, error) {
	d := s.Registration

	phone, err := kernel.NewPhone(d.Phone)
	if err != nil {
		return Reply{}, err
	}
	profile := user.Profile{
		Username: username,
		FullName: d.FullName,
		Phone:    phone,
		Company:  d.Company,
	}
	if d.Email != nil {
		email, err := kernel.NewEmail(*d.Email)
		if err != nil {
			return Reply{}, err
		}
		profile.Email = &email
	}

	cmd, err := commands.NewRegisterUserCommand(s.UserID, d.Role, profile)
	if err != nil {
		return Reply{}, err
	}
	u, err := e.handlers.RegisterUser.Handle(ctx, cmd)
	if err != nil {
		return Reply{}, err
	}

	e.logger.InfoContext(ctx, "User registered", "user_id", u.ID(), "role", u.Role().String())
	return Reply{
		Text: fmt.Sprintf("✅ Congratulations! You are registered as a %s.\n\n"+
			"You can now use the bot.", RoleName(u.Role())),
		Finished: true,
	}, nil
}

// parsePhone accepts a typed number or a shared contact. Contacts are
// normalized first because Telegram often drops the leading plus.
func parsePhone(in Input) (kernel.Phone, bool) {
	var (
		phone kernel.Phone
		err   error
	)
	switch in.Kind {
	case InputContact:
		phone, err = kernel.NewPhoneFromContact(in.Text)
	case InputText:
		phone, err = kernel.NewPhone(in.Text)
	default:
		return kernel.Phone{}, false
	}
	return phone, err == nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
