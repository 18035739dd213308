// Package order provides the Order aggregate of the freight exchange and its
// lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding cargo details, participants, status and stage
//   - Status: the closed lifecycle enum new, accepted, delivered, completed, cancelled
//   - Stage: advisory carrier progress kept beside the status
//   - AvailableActions: the pure role and status gate used to build action buttons
//
// Key business rules:
//   - Only a carrier other than the sender may accept, and only a new order
//   - Only the assigned carrier may mark an order delivered or report a stage
//   - Only the sender may confirm delivery or cancel a new order
//   - A wrong status yields errs.ConflictError, a wrong actor errs.ForbiddenError
package order
