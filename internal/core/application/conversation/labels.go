package conversation

import (
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// Choice buttons send their label as text. The engine accepts either the
// label or the bare value ("sender", "fragile", "email").

func RoleLabel(r kernel.Role) string {
	switch r {
	case kernel.RoleSender:
		return "📦 I am a sender"
	case kernel.RoleCarrier:
		return "🚚 I am a carrier"
	default:
		return string(r)
	}
}

func CargoTypeLabel(ct order.CargoType) string {
	switch ct {
	case order.CargoStandard:
		return "📦 Standard"
	case order.CargoOversized:
		return "📏 Oversized"
	case order.CargoFragile:
		return "🔶 Fragile"
	case order.CargoValuable:
		return "🔒 Valuable"
	default:
		return ct.String()
	}
}

func ProfileFieldLabel(f commands.ProfileField) string {
	switch f {
	case commands.ProfileFieldName:
		return "👤 Name"
	case commands.ProfileFieldPhone:
		return "📱 Phone"
	case commands.ProfileFieldEmail:
		return "📧 Email"
	case commands.ProfileFieldCompany:
		return "🏢 Company"
	default:
		return string(f)
	}
}

// ProfileFields lists the editable attributes in menu order.
func ProfileFields() []commands.ProfileField {
	return []commands.ProfileField{
		commands.ProfileFieldName,
		commands.ProfileFieldPhone,
		commands.ProfileFieldEmail,
		commands.ProfileFieldCompany,
	}
}

// RoleName is the lowercase noun used in sentences.
func RoleName(r kernel.Role) string {
	if r == kernel.RoleCarrier {
		return "carrier"
	}
	return "sender"
}

func parseRole(in Input) (kernel.Role, bool) {
	if in.Kind != InputText {
		return "", false
	}
	for _, r := range []kernel.Role{kernel.RoleSender, kernel.RoleCarrier} {
		if matches(in.Text, RoleLabel(r), string(r)) {
			return r, true
		}
	}
	return "", false
}

func parseCargoType(in Input) (order.CargoType, bool) {
	if in.Kind != InputText {
		return order.CargoUnknown, false
	}
	for _, ct := range order.CargoTypes() {
		if matches(in.Text, CargoTypeLabel(ct), ct.String()) {
			return ct, true
		}
	}
	return order.CargoUnknown, false
}

func parseProfileField(in Input) (commands.ProfileField, bool) {
	if in.Kind != InputText {
		return "", false
	}
	for _, f := range ProfileFields() {
		if matches(in.Text, ProfileFieldLabel(f), string(f)) {
			return f, true
		}
	}
	return "", false
}

func matches(text, label, value string) bool {
	text = strings.TrimSpace(text)
	return text == label || strings.EqualFold(text, value)
}
