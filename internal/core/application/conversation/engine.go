package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// ErrNoActiveSession is returned by Engine.Handle when the user is not filling in a form.
var ErrNoActiveSession = errors.New("no conversation in progress")

type RegisterUserHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error)
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (int64, error)
}

type UpdateProfileHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateProfileCommand) (*user.User, error)
}

type AttachDocumentHandler interface {
	Handle(ctx context.Context, cmd commands.AttachDocumentCommand) (*document.Document, error)
}

type UserFinder interface {
	Handle(ctx context.Context, query queries.GetUserQuery) (*user.User, error)
}

type OrderDetailsFinder interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
}

// Handlers are the use cases a completed form is handed to.
type Handlers struct {
	RegisterUser   RegisterUserHandler
	CreateOrder    CreateOrderHandler
	UpdateProfile  UpdateProfileHandler
	AttachDocument AttachDocumentHandler
	Users          UserFinder
	OrderDetails   OrderDetailsFinder
}

// Engine runs the conversation flows.
type Engine struct {
	store    SessionStore
	handlers Handlers
	locks    *userLocks
	logger   *slog.Logger
}

func NewEngine(store SessionStore, handlers Handlers, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		handlers: handlers,
		locks:    newUserLocks(),
		logger:   logger.With("component", "conversation_engine"),
	}
}

// StartRegistration opens the registration form. An already registered user
// gets a finished reply and no session.
func (e *Engine) StartRegistration(ctx context.Context, userID int64) (Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	u, err := e.findUser(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if u != nil {
		if err = e.store.Delete(ctx, userID); err != nil {
			return Reply{}, fmt.Errorf("delete session: %w", err)
		}
		return Reply{
			Text:     fmt.Sprintf("You are already registered as a %s.", RoleName(u.Role())),
			Finished: true,
		}, nil
	}

	reply, err := e.begin(ctx, newSession(userID, FlowRegistration, StepRole))
	if err != nil {
		return Reply{}, err
	}
	reply.Text = "👤 Let's get you registered!\n\n" + reply.Text
	return reply, nil
}

// StartOrderCreation opens the order form for a registered sender.
func (e *Engine) StartOrderCreation(ctx context.Context, userID int64) (Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	u, err := e.findUser(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if u == nil {
		return Reply{}, errs.NewForbiddenErrorWithCause("create order", errors.New("user is not registered"))
	}
	if !u.IsSender() {
		return Reply{}, errs.NewForbiddenErrorWithCause("create order", errors.New("only senders can create orders"))
	}

	reply, err := e.begin(ctx, newSession(userID, FlowCreateOrder, StepCargoType))
	if err != nil {
		return Reply{}, err
	}
	reply.Text = "📝 Creating a new order.\n\n" + reply.Text
	return reply, nil
}

// StartProfileEdit opens the profile editor for a registered user.
func (e *Engine) StartProfileEdit(ctx context.Context, userID int64) (Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	u, err := e.findUser(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if u == nil {
		return Reply{}, errs.NewForbiddenErrorWithCause("edit profile", errors.New("user is not registered"))
	}

	return e.begin(ctx, newSession(userID, FlowEditProfile, StepProfileField))
}

// StartDocumentUpload opens the document loop for an existing order the user
// may attach files to.
func (e *Engine) StartDocumentUpload(ctx context.Context, userID, orderID int64) (Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	query, err := queries.NewGetOrderDetailsQuery(orderID, userID)
	if err != nil {
		return Reply{}, err
	}
	details, err := e.handlers.OrderDetails.Handle(ctx, query)
	if err != nil {
		return Reply{}, err
	}
	if !order.Has(details.Actions, order.ActionAddDocument) {
		return Reply{}, errs.NewForbiddenErrorWithCause("attach document",
			fmt.Errorf("order %d is %s", orderID, details.Order.Status()))
	}

	s := newSession(userID, FlowAddDocuments, StepDocuments)
	s.OrderID = orderID
	return e.begin(ctx, s)
}

// Handle applies one input to the user's session. Invalid input is answered
// with a Reply that repeats the question; the returned error is reserved for
// failures the user cannot fix by retyping.
func (e *Engine) Handle(ctx context.Context, userID int64, in Input) (Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	s, err := e.store.Load(ctx, userID)
	if errors.Is(err, ErrSessionNotFound) {
		return Reply{}, ErrNoActiveSession
	}
	if err != nil {
		return Reply{}, fmt.Errorf("load session: %w", err)
	}

	if in.Kind == InputCancel {
		if err = e.store.Delete(ctx, userID); err != nil {
			return Reply{}, fmt.Errorf("delete session: %w", err)
		}
		e.logger.DebugContext(ctx, "Conversation cancelled", "user_id", userID, "flow", s.Flow, "step", s.Step)
		return Reply{Text: cancelledText(s), Finished: true}, nil
	}

	var reply Reply
	switch s.Flow {
	case FlowRegistration:
		reply, err = e.register(ctx, s, in)
	case FlowCreateOrder:
		reply, err = e.createOrder(ctx, s, in)
	case FlowEditProfile:
		reply, err = e.editProfile(ctx, s, in)
	case FlowAddDocuments:
		reply, err = e.attachDocuments(ctx, s, in)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("conversation flow", fmt.Errorf("%q is unknown", s.Flow))
	}
	if err != nil {
		if isTerminal(err) {
			if delErr := e.store.Delete(ctx, userID); delErr != nil {
				e.logger.ErrorContext(ctx, "Failed to drop session", "user_id", userID, "error", delErr)
			}
		}
		return Reply{}, err
	}

	if reply.Finished {
		if err = e.store.Delete(ctx, userID); err != nil {
			return Reply{}, fmt.Errorf("delete session: %w", err)
		}
		return reply, nil
	}

	s.touch()
	if err = e.store.Save(ctx, s); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}
	return reply, nil
}

func (e *Engine) begin(ctx context.Context, s *Session) (Reply, error) {
	if err := e.store.Save(ctx, s); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}
	e.logger.DebugContext(ctx, "Conversation started", "user_id", s.UserID, "flow", s.Flow)
	return prompt(s), nil
}

// findUser returns nil without an error for a user that never registered.
func (e *Engine) findUser(ctx context.Context, userID int64) (*user.User, error) {
	query, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return nil, err
	}
	u, err := e.handlers.Users.Handle(ctx, query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return u, err
}

// isTerminal reports errors after which the flow cannot go on, such as an
// order that was taken by someone else or a duplicate registration.
func isTerminal(err error) bool {
	return errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrForbidden) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errs.IsValidation(err)
}

// advance moves to the next step and asks its question.
func advance(s *Session, next Step) Reply {
	s.Step = next
	return prompt(s)
}

// toConfirmation opens the confirmation step, or sends the user back to the
// first required answer the draft lacks.
func toConfirmation(s *Session, confirm, missing Step) Reply {
	if missing != "" {
		s.Step = missing
		reply := prompt(s)
		reply.Text = "⚠️ Some required data is missing.\n\n" + reply.Text
		return reply
	}
	return advance(s, confirm)
}

// retry keeps the step and explains what was wrong.
func retry(s *Session, problem string) Reply {
	reply := prompt(s)
	reply.Text = problem + "\n\n" + reply.Text
	return reply
}
