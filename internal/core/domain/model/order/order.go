package order

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
	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrIDIsAlreadySet is returned when storage tries to assign an id twice.
	ErrIDIsAlreadySet = errors.New("order id is already set")
)

// Cargo describes what is shipped, from where, to where and when.
// Dimensions and Comment are optional and nil when skipped.
type Cargo struct {
	Type            CargoType
	Weight          kernel.Weight
	Dimensions      *string
	PickupAddress   string
	DeliveryAddress string
	PickupDate      string
	Comment         *string
}

// Order is a shipment request published by a sender and fulfilled by a carrier.
//
// Invariants:
//   - the sender is always set
//   - the carrier is set exactly when the status is accepted, delivered or completed,
//     and once set it never changes
//   - a stage is only reported after the order was accepted
type Order struct {
	id        int64
	senderID  int64
	carrierID *int64
	cargo     Cargo
	status    Status
	stage     Stage
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewOrder creates an order in status New without an id. The id is assigned by
// storage through SetID when the order is first persisted.
func NewOrder(senderID int64, cargo Cargo, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:    New,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setSenderID(senderID),
		o.setCargo(cargo),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage and checks that status,
// carrier and stage agree with each other.
func RestoreOrder(
	id int64,
	senderID int64,
	carrierID *int64,
	cargo Cargo,
	status Status,
	stage Stage,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.SetID(id),
		o.setSenderID(senderID),
		o.setCargo(cargo),
		o.restoreState(carrierID, status, stage),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// SetID assigns the storage id. It succeeds only once.
func (o *Order) SetID(id int64) error {
	if o.id != 0 {
		return ErrIDIsAlreadySet
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive id", id))
	}
	o.id = id
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) SenderID() int64 {
	return o.senderID
}

// CarrierID returns nil until the order is accepted.
func (o *Order) CarrierID() *int64 {
	if o.carrierID == nil {
		return nil
	}
	id := *o.carrierID
	return &id
}

func (o *Order) Cargo() Cargo {
	return o.cargo
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Stage() Stage {
	return o.stage
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsSender reports whether userID published the order.
func (o *Order) IsSender(userID int64) bool {
	return o.senderID == userID
}

// IsCarrier reports whether userID is the assigned carrier.
func (o *Order) IsCarrier(userID int64) bool {
	return o.carrierID != nil && *o.carrierID == userID
}

// IsParticipant reports whether userID is the sender or the assigned carrier.
func (o *Order) IsParticipant(userID int64) bool {
	return o.IsSender(userID) || o.IsCarrier(userID)
}

// Counterparty returns the other side of the order for userID. It returns
// false when userID is not a participant or when nobody is on the other side yet.
func (o *Order) Counterparty(userID int64) (int64, bool) {
	switch {
	case o.IsSender(userID) && o.carrierID != nil:
		return *o.carrierID, true
	case o.IsCarrier(userID):
		return o.senderID, true
	default:
		return 0, false
	}
}

// CanView reports whether the user may see the order details. Open orders are
// visible to every carrier, everything else only to participants.
func (o *Order) CanView(userID int64, role kernel.Role) bool {
	if o.IsParticipant(userID) {
		return true
	}
	return o.status == New && role == kernel.RoleCarrier
}

// CanAttachDocuments reports whether userID may add documents to the order.
func (o *Order) CanAttachDocuments(userID int64) bool {
	return o.status != Cancelled && o.IsParticipant(userID)
}

// Accept assigns the carrier and moves the order to Accepted.
func (o *Order) Accept(carrierID int64, role kernel.Role) error {
	if role != kernel.RoleCarrier {
		return errs.NewForbiddenErrorWithCause("accept order", fmt.Errorf("role %s cannot accept orders", role))
	}
	if o.IsSender(carrierID) {
		return errs.NewForbiddenErrorWithCause("accept order", errors.New("the sender cannot accept their own order"))
	}
	if o.carrierID != nil {
		return NewStatusConflictError(o.status, errors.New("a carrier is already assigned"))
	}

	status, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = status
	o.carrierID = &carrierID
	return nil
}

// MarkDelivered is reported by the assigned carrier once the cargo is handed over.
func (o *Order) MarkDelivered(actorID int64) error {
	if !o.IsCarrier(actorID) {
		return errs.NewForbiddenErrorWithCause("mark delivered", errors.New("only the assigned carrier can mark the order delivered"))
	}

	status, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	o.status = status
	return nil
}

// ConfirmDelivery is called by the sender to close a delivered order.
func (o *Order) ConfirmDelivery(actorID int64) error {
	if !o.IsSender(actorID) {
		return errs.NewForbiddenErrorWithCause("confirm delivery", errors.New("only the sender can confirm delivery"))
	}

	status, err := o.status.ConfirmDelivery()
	if err != nil {
		return err
	}

	o.status = status
	return nil
}

// Cancel withdraws an order nobody has accepted yet.
func (o *Order) Cancel(actorID int64) error {
	if !o.IsSender(actorID) {
		return errs.NewForbiddenErrorWithCause("cancel order", errors.New("only the sender can cancel the order"))
	}

	status, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = status
	return nil
}

// SetStage records carrier progress. Stages may be reported in any order but
// only while the order is accepted.
func (o *Order) SetStage(actorID int64, stage Stage) error {
	if err := stage.validateSettable(); err != nil {
		return err
	}
	if !o.IsCarrier(actorID) {
		return errs.NewForbiddenErrorWithCause("set stage", errors.New("only the assigned carrier can report a stage"))
	}
	if o.status != Accepted {
		return errs.NewConflictErrorWithCause("order", o.id,
			fmt.Errorf("stage can only be reported for accepted orders, this one is %s", o.status))
	}

	o.stage = stage
	return nil
}

func (o *Order) setSenderID(senderID int64) error {
	if senderID <= 0 {
		return errs.NewValueIsRequiredError("sender id")
	}
	o.senderID = senderID
	return nil
}

func (o *Order) setCargo(c Cargo) error {
	c.PickupAddress = strings.TrimSpace(c.PickupAddress)
	c.DeliveryAddress = strings.TrimSpace(c.DeliveryAddress)
	c.PickupDate = strings.TrimSpace(c.PickupDate)
	c.Dimensions = optional(c.Dimensions)
	c.Comment = optional(c.Comment)

	var problems []error
	if err := c.Type.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := c.Weight.Validate(); err != nil {
		problems = append(problems, err)
	}
	if c.PickupAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup address"))
	}
	if c.DeliveryAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery address"))
	}
	if c.PickupDate == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup date"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.cargo = c
	return nil
}

func (o *Order) restoreState(carrierID *int64, status Status, stage Stage) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.HasCarrier() != (carrierID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("an order that is %s cannot have carrier set to %t", status, carrierID != nil))
	}
	if stage.IsSet() {
		if err := stage.validateSettable(); err != nil {
			return err
		}
		if !status.HasCarrier() {
			return errs.NewValueIsInvalidErrorWithCause("stage",
				fmt.Errorf("an order that is %s cannot have a stage", status))
		}
	}

	o.status = status
	o.stage = stage
	if carrierID != nil {
		id := *carrierID
		o.carrierID = &id
	}
	return nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
