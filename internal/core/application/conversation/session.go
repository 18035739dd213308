package conversation

import (
	"strings"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// Flow is the form a user is filling in.
type Flow string

const (
	FlowRegistration Flow = "registration"
	FlowCreateOrder  Flow = "create_order"
	FlowEditProfile  Flow = "edit_profile"
	FlowAddDocuments Flow = "add_documents"
)

// Step is the question the next input answers.
type Step string

const (
	StepRole                Step = "role"
	StepName                Step = "name"
	StepPhone               Step = "phone"
	StepEmail               Step = "email"
	StepCompany             Step = "company"
	StepConfirmRegistration Step = "confirm_registration"

	StepCargoType       Step = "cargo_type"
	StepWeight          Step = "weight"
	StepDimensions      Step = "dimensions"
	StepPickupAddress   Step = "pickup_address"
	StepDeliveryAddress Step = "delivery_address"
	StepPickupDate      Step = "pickup_date"
	StepComment         Step = "comment"
	StepConfirmOrder    Step = "confirm_order"
	StepDocuments       Step = "documents"

	StepProfileField Step = "profile_field"
	StepProfileValue Step = "profile_value"
)

// RegistrationDraft holds validated registration answers. Optional fields
// stay nil when skipped.
type RegistrationDraft struct {
	Role     kernel.Role `json:"role,omitempty"`
	FullName string      `json:"full_name,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Email    *string     `json:"email,omitempty"`
	Company  *string     `json:"company,omitempty"`
}

// Complete reports whether every required answer is present.
func (d RegistrationDraft) Complete() bool {
	return d.firstMissing() == ""
}

func (d RegistrationDraft) firstMissing() Step {
	switch {
	case d.Role.Validate() != nil:
		return StepRole
	case strings.TrimSpace(d.FullName) == "":
		return StepName
	case d.Phone == "":
		return StepPhone
	default:
		return ""
	}
}

// OrderDraft holds validated order answers.
type OrderDraft struct {
	CargoType       order.CargoType `json:"cargo_type,omitempty"`
	WeightKg        float64         `json:"weight_kg,omitempty"`
	Dimensions      *string         `json:"dimensions,omitempty"`
	PickupAddress   string          `json:"pickup_address,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PickupDate      string          `json:"pickup_date,omitempty"`
	Comment         *string         `json:"comment,omitempty"`
}

// Complete reports whether every required answer is present.
func (d OrderDraft) Complete() bool {
	return d.firstMissing() == ""
}

func (d OrderDraft) firstMissing() Step {
	switch {
	case d.CargoType.Validate() != nil:
		return StepCargoType
	case d.WeightKg <= 0:
		return StepWeight
	case d.PickupAddress == "":
		return StepPickupAddress
	case d.DeliveryAddress == "":
		return StepDeliveryAddress
	case d.PickupDate == "":
		return StepPickupDate
	default:
		return ""
	}
}

// ProfileDraft remembers which attribute is being edited.
type ProfileDraft struct {
	Field commands.ProfileField `json:"field,omitempty"`
}

// Session is the per-user conversation state.
type Session struct {
	UserID       int64             `json:"user_id"`
	Flow         Flow              `json:"flow"`
	Step         Step              `json:"step"`
	Registration RegistrationDraft `json:"registration"`
	Order        OrderDraft        `json:"order"`
	Profile      ProfileDraft      `json:"profile"`
	// OrderID is the order receiving documents in the document loop.
	OrderID int64 `json:"order_id,omitempty"`
	// Attached counts documents stored during the current loop.
	Attached  int       `json:"attached,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSession(userID int64, flow Flow, step Step) *Session {
	return &Session{
		UserID:    userID,
		Flow:      flow,
		Step:      step,
		UpdatedAt: time.Now().UTC(),
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
