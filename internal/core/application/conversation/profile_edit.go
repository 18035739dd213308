package conversation

import (
	"context"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

func (e *Engine) editProfile(ctx context.Context, s *Session, in Input) (Reply, error) {
	switch s.Step {
	case StepProfileField:
		field, ok := parseProfileField(in)
		if !ok {
			return retry(s, "❌ Please choose a field with the buttons below."), nil
		}
		s.Profile.Field = field
		return advance(s, StepProfileValue), nil

	case StepProfileValue:
		field := s.Profile.Field
		var raw string
		switch {
		case in.Kind == InputSkip:
			return Reply{Text: "Profile left unchanged.", Finished: true}, nil
		case in.Kind == InputContact && field == commands.ProfileFieldPhone:
			raw = kernel.NormalizePhone(in.Text)
		case in.Kind == InputText:
			raw = in.Text
		default:
			return retry(s, invalidProfileValue(field)), nil
		}

		cmd, err := commands.NewUpdateProfileCommand(s.UserID, field, raw)
		if errs.IsValidation(err) {
			return retry(s, invalidProfileValue(field)), nil
		}
		if err != nil {
			return Reply{}, err
		}

		if _, err = e.handlers.UpdateProfile.Handle(ctx, cmd); err != nil {
			return Reply{}, err
		}
		e.logger.InfoContext(ctx, "Profile updated", "user_id", s.UserID, "field", string(field))
		return Reply{Text: "✅ Profile updated.", Finished: true}, nil
	}

	return Reply{}, fmt.Errorf("profile edit has no step %q", s.Step)
}

func invalidProfileValue(field commands.ProfileField) string {
	switch field {
	case commands.ProfileFieldPhone:
		return "❌ Invalid phone number. Enter it as +XXXXXXXXXXX or share your contact."
	case commands.ProfileFieldEmail:
		return "❌ Invalid email format."
	default:
		return "❌ The value cannot be empty."
	}
}
