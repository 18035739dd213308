package order

import "github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"

// Action is something a user can do with an order from its detail view.
type Action string

const (
	ActionAccept          Action = "accept"
	ActionMarkDelivered   Action = "mark_delivered"
	ActionConfirmDelivery Action = "confirm_delivery"
	ActionCancel          Action = "cancel"
	ActionSetStage        Action = "set_stage"
	ActionAddDocument     Action = "add_document"
	ActionViewDocuments   Action = "view_documents"
)

// AvailableActions returns the actions the viewer may take on o, in display order.
// It has no side effects and does not consult storage.
func AvailableActions(o *Order, viewerID int64, role kernel.Role) []Action {
	if o == nil || !o.CanView(viewerID, role) {
		return nil
	}

	var actions []Action
	switch o.status {
	case New:
		if role == kernel.RoleCarrier && !o.IsSender(viewerID) {
			actions = append(actions, ActionAccept)
		}
		if o.IsSender(viewerID) {
			actions = append(actions, ActionCancel)
		}
	case Accepted:
		if o.IsCarrier(viewerID) {
			actions = append(actions, ActionSetStage, ActionMarkDelivered)
		}
	case Delivered:
		if o.IsSender(viewerID) {
			actions = append(actions, ActionConfirmDelivery)
		}
	case Unknown, Completed, Cancelled:
	}

	if o.CanAttachDocuments(viewerID) {
		actions = append(actions, ActionAddDocument)
	}
	if o.IsParticipant(viewerID) {
		actions = append(actions, ActionViewDocuments)
	}
	return actions
}

// Has reports whether action is in actions.
func Has(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
