package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
)

const notProvided = "not provided"

// prompt asks the question of the current step.
func prompt(s *Session) Reply {
	switch s.Step {
	case StepRole:
		return Reply{Text: "Choose your role:", Keyboard: KeyboardRoles}
	case StepName:
		return Reply{Text: "👤 Enter your first and last name:", Keyboard: KeyboardSkip}
	case StepPhone:
		return Reply{
			Text: "📱 Enter your phone number for contact.\n" +
				"Share your contact with the button or type it as +XXXXXXXXXXX.",
			Keyboard: KeyboardPhone,
		}
	case StepEmail:
		return Reply{Text: "📧 Enter your email (optional). You can skip this step.", Keyboard: KeyboardSkip}
	case StepCompany:
		return Reply{Text: "🏢 Enter your company name (optional):", Keyboard: KeyboardSkip}
	case StepConfirmRegistration:
		return Reply{Text: registrationSummary(s.Registration), Keyboard: KeyboardConfirm}

	case StepCargoType:
		return Reply{Text: "📦 Choose the cargo type:", Keyboard: KeyboardCargoTypes}
	case StepWeight:
		return Reply{Text: "⚖️ Enter the cargo weight in kg:", Keyboard: KeyboardCancel}
	case StepDimensions:
		return Reply{Text: "📏 Enter the cargo dimensions (L×W×H, m) or skip this step:", Keyboard: KeyboardSkip}
	case StepPickupAddress:
		return Reply{Text: "📍 Enter the pickup address:", Keyboard: KeyboardCancel}
	case StepDeliveryAddress:
		return Reply{Text: "🏁 Enter the delivery address:", Keyboard: KeyboardCancel}
	case StepPickupDate:
		return Reply{Text: "📅 Enter the pickup date (for example 25.12.2025):", Keyboard: KeyboardCancel}
	case StepComment:
		return Reply{Text: "💬 Add a comment for the carrier or skip this step:", Keyboard: KeyboardSkip}
	case StepConfirmOrder:
		return Reply{Text: orderSummary(s.Order), Keyboard: KeyboardConfirm}
	case StepDocuments:
		return Reply{
			Text: fmt.Sprintf("📎 Send photos or documents for order #%d.\n"+
				"Press Finish when you are done.", s.OrderID),
			Keyboard: KeyboardDocuments,
		}

	case StepProfileField:
		return Reply{Text: "✏️ What would you like to change?", Keyboard: KeyboardProfileFields}
	case StepProfileValue:
		return profileValuePrompt(s.Profile.Field)
	}

	return Reply{Text: "Unknown step. Press Cancel to start over.", Keyboard: KeyboardCancel}
}

func profileValuePrompt(field commands.ProfileField) Reply {
	switch field {
	case commands.ProfileFieldName:
		return Reply{Text: "👤 Enter your new first and last name:", Keyboard: KeyboardSkip}
	case commands.ProfileFieldPhone:
		return Reply{Text: "📱 Enter your new phone number or share your contact:", Keyboard: KeyboardPhone}
	case commands.ProfileFieldEmail:
		return Reply{Text: "📧 Enter your new email:", Keyboard: KeyboardSkip}
	default:
		return Reply{Text: "🏢 Enter your new company name:", Keyboard: KeyboardSkip}
	}
}

func registrationSummary(d RegistrationDraft) string {
	var b strings.Builder
	b.WriteString("👤 Please check your data:\n\n")
	fmt.Fprintf(&b, "Role: %s\n", RoleName(d.Role))
	fmt.Fprintf(&b, "Name: %s\n", d.FullName)
	fmt.Fprintf(&b, "Phone: %s\n", d.Phone)
	fmt.Fprintf(&b, "Email: %s\n", valueOr(d.Email))
	fmt.Fprintf(&b, "Company: %s\n\n", valueOr(d.Company))
	b.WriteString("Is everything correct?")
	return b.String()
}

func orderSummary(d OrderDraft) string {
	var b strings.Builder
	b.WriteString("📋 Please check your order:\n\n")
	fmt.Fprintf(&b, "Cargo type: %s\n", CargoTypeLabel(d.CargoType))
	fmt.Fprintf(&b, "Weight: %s kg\n", strconv.FormatFloat(d.WeightKg, 'f', -1, 64))
	fmt.Fprintf(&b, "Dimensions: %s\n", valueOr(d.Dimensions))
	fmt.Fprintf(&b, "Pickup address: %s\n", d.PickupAddress)
	fmt.Fprintf(&b, "Delivery address: %s\n", d.DeliveryAddress)
	fmt.Fprintf(&b, "Pickup date: %s\n", d.PickupDate)
	fmt.Fprintf(&b, "Comment: %s\n\n", valueOr(d.Comment))
	b.WriteString("Is everything correct?")
	return b.String()
}

func cancelledText(s *Session) string {
	switch s.Flow {
	case FlowRegistration:
		return "❌ Registration cancelled."
	case FlowEditProfile:
		return "❌ Profile editing cancelled."
	case FlowCreateOrder:
		if s.Step == StepDocuments {
			return fmt.Sprintf("Order #%d is saved. You can add documents later from the order card.", s.OrderID)
		}
		return "❌ Order creation cancelled."
	default:
		return "❌ Action cancelled."
	}
}

func valueOr(v *string) string {
	if v == nil || *v == "" {
		return notProvided
	}
	return *v
}
