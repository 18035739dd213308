package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

type (
	Conversation interface {
		StartRegistration(ctx context.Context, userID int64) (conversation.Reply, error)
		StartOrderCreation(ctx context.Context, userID int64) (conversation.Reply, error)
		StartProfileEdit(ctx context.Context, userID int64) (conversation.Reply, error)
		StartDocumentUpload(ctx context.Context, userID, orderID int64) (conversation.Reply, error)
		Handle(ctx context.Context, userID int64, in conversation.Input) (conversation.Reply, error)
	}

	// TransitionHandler is any order lifecycle command handler.
	TransitionHandler[C any] interface {
		Handle(ctx context.Context, cmd C) (*order.Order, error)
	}

	UserQuery interface {
		Handle(ctx context.Context, q queries.GetUserQuery) (*user.User, error)
	}

	AvailableOrdersQuery interface {
		Handle(ctx context.Context, q queries.GetAvailableOrdersQuery) (queries.Page[*order.Order], error)
	}

	ActorOrdersQuery interface {
		Handle(ctx context.Context, q queries.GetActorOrdersQuery) ([]*order.Order, error)
	}

	OrderDetailsQuery interface {
		Handle(ctx context.Context, q queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
	}

	OrderDocumentsQuery interface {
		Handle(ctx context.Context, q queries.GetOrderDocumentsQuery) ([]*document.Document, error)
	}
)

type Lifecycle struct {
	Accept          TransitionHandler[commands.AcceptOrderCommand]
	MarkDelivered   TransitionHandler[commands.MarkDeliveredCommand]
	ConfirmDelivery TransitionHandler[commands.ConfirmDeliveryCommand]
	Cancel          TransitionHandler[commands.CancelOrderCommand]
	UpdateStage     TransitionHandler[commands.UpdateStageCommand]
}

type Queries struct {
	User            UserQuery
	AvailableOrders AvailableOrdersQuery
	ActorOrders     ActorOrdersQuery
	OrderDetails    OrderDetailsQuery
	OrderDocuments  OrderDocumentsQuery
}

// Handlers routes updates of one user. Calls for the same user never overlap
// because the Bot shards updates by user id.
type Handlers struct {
	sender       *Sender
	downloader   FileDownloader
	storage      ports.FileStorage
	conversation Conversation
	lifecycle    Lifecycle
	queries      Queries
	logger       *slog.Logger
}

func NewHandlers(
	sender *Sender,
	downloader FileDownloader,
	storage ports.FileStorage,
	conv Conversation,
	lifecycle Lifecycle,
	q Queries,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		sender:       sender,
		downloader:   downloader,
		storage:      storage,
		conversation: conv,
		lifecycle:    lifecycle,
		queries:      q,
		logger:       logger.With("component", "telegram_handlers"),
	}
}

func (h *Handlers) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handlers) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID, chatID := msg.From.ID, msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.showWelcome(ctx, chatID, userID)
		case "help":
			h.send(ctx, chatID, helpText, nil)
		case "cancel":
			h.converse(ctx, chatID, userID, conversation.Cancel())
		default:
			h.send(ctx, chatID, "🤷 Unknown command. Use the menu buttons.", nil)
		}
		return
	}

	switch msg.Text {
	case btnRegister:
		h.start(ctx, chatID, userID, h.conversation.StartRegistration)
	case btnCreateOrder:
		h.start(ctx, chatID, userID, h.conversation.StartOrderCreation)
	case btnEditProfile:
		h.start(ctx, chatID, userID, h.conversation.StartProfileEdit)
	case btnFindOrders:
		h.showBoard(ctx, chatID, userID, 1)
	case btnMyOrders:
		h.showActorOrders(ctx, chatID, userID)
	case btnProfile:
		h.showProfile(ctx, chatID, userID)
	case btnInfo:
		h.send(ctx, chatID, helpText, nil)
	default:
		in, err := h.toInput(ctx, msg)
		if err != nil {
			h.replyError(ctx, chatID, userID, err)
			return
		}
		h.converse(ctx, chatID, userID, in)
	}
}

func (h *Handlers) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	h.sender.answer(cq.ID, "")
	if cq.From == nil {
		return
	}
	userID := cq.From.ID
	chatID := userID
	if cq.Message != nil && cq.Message.Chat != nil {
		chatID = cq.Message.Chat.ID
	}

	cb, err := parseCallback(cq.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "Ignoring malformed callback", "user_id", userID, "data", cq.Data)
		return
	}

	switch cb.Action {
	case cbFormConfirm:
		in := conversation.Confirm()
		in.Username = cq.From.UserName
		h.converse(ctx, chatID, userID, in)
	case cbFormReject:
		h.converse(ctx, chatID, userID, conversation.Reject())
	case cbAccept:
		h.accept(ctx, chatID, userID, cb.ID)
	case cbDeliver:
		h.transition(ctx, chatID, userID, cb.ID, func() (*order.Order, error) {
			cmd, err := commands.NewMarkDeliveredCommand(cb.ID, userID)
			if err != nil {
				return nil, err
			}
			return h.lifecycle.MarkDelivered.Handle(ctx, cmd)
		}, "🚚 Order #%d is marked as delivered. The sender has been asked to confirm receipt.")
	case cbConfirmDelivery:
		h.transition(ctx, chatID, userID, cb.ID, func() (*order.Order, error) {
			cmd, err := commands.NewConfirmDeliveryCommand(cb.ID, userID)
			if err != nil {
				return nil, err
			}
			return h.lifecycle.ConfirmDelivery.Handle(ctx, cmd)
		}, "🏁 Order #%d is completed. Thank you!")
	case cbCancelOrder:
		h.transition(ctx, chatID, userID, cb.ID, func() (*order.Order, error) {
			cmd, err := commands.NewCancelOrderCommand(cb.ID, userID)
			if err != nil {
				return nil, err
			}
			return h.lifecycle.Cancel.Handle(ctx, cmd)
		}, "❌ Order #%d is cancelled.")
	case cbStageMenu:
		h.send(ctx, chatID, fmt.Sprintf("📍 Choose the current stage of order #%d:", cb.ID), stagesKeyboard(cb.ID))
	case cbStage:
		h.updateStage(ctx, chatID, userID, cb)
	case cbView:
		h.showOrder(ctx, chatID, userID, cb.ID)
	case cbDocuments:
		h.sendDocuments(ctx, chatID, userID, cb.ID)
	case cbAddDocument:
		h.start(ctx, chatID, userID, func(ctx context.Context, userID int64) (conversation.Reply, error) {
			return h.conversation.StartDocumentUpload(ctx, userID, cb.ID)
		})
	case cbPage:
		h.showBoard(ctx, chatID, userID, int(cb.ID))
	case cbNoop:
	default:
		h.logger.WarnContext(ctx, "Ignoring unknown callback", "user_id", userID, "data", cq.Data)
	}
}

// toInput decodes a message sent while a form may be open. Attachments are
// downloaded only when they are of a kind the document step accepts.
func (h *Handlers) toInput(ctx context.Context, msg *tgbotapi.Message) (conversation.Input, error) {
	var in conversation.Input

	switch {
	case msg.Contact != nil:
		in = conversation.Contact(msg.Contact.PhoneNumber)
	case len(msg.Photo) > 0:
		largest := msg.Photo[len(msg.Photo)-1]
		data, err := h.downloader.Download(ctx, largest.FileID)
		if err != nil {
			return in, err
		}
		in = conversation.File(commands.FileUpload{
			Kind:      string(document.KindPhoto),
			Extension: ".jpg",
			Data:      data,
		})
	case msg.Document != nil:
		data, err := h.downloader.Download(ctx, msg.Document.FileID)
		if err != nil {
			return in, err
		}
		in = conversation.File(commands.FileUpload{
			Kind:      string(document.KindDocument),
			Name:      msg.Document.FileName,
			Extension: path.Ext(msg.Document.FileName),
			Data:      data,
		})
	case msg.Video != nil, msg.Animation != nil:
		in = conversation.File(commands.FileUpload{Kind: "video"})
	case msg.Audio != nil, msg.Voice != nil, msg.VideoNote != nil:
		in = conversation.File(commands.FileUpload{Kind: "audio"})
	case msg.Sticker != nil:
		in = conversation.File(commands.FileUpload{Kind: "sticker"})
	default:
		switch msg.Text {
		case btnSkip:
			in = conversation.Skip()
		case btnCancel:
			in = conversation.Cancel()
		case btnFinish:
			in = conversation.Confirm()
		default:
			in = conversation.Text(msg.Text)
		}
	}

	in.DisplayName = strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	in.Username = msg.From.UserName
	return in, nil
}

func (h *Handlers) start(
	ctx context.Context,
	chatID, userID int64,
	begin func(ctx context.Context, userID int64) (conversation.Reply, error),
) {
	reply, err := begin(ctx, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.sendReply(ctx, chatID, userID, reply)
}

func (h *Handlers) converse(ctx context.Context, chatID, userID int64, in conversation.Input) {
	reply, err := h.conversation.Handle(ctx, userID, in)
	switch {
	case errors.Is(err, conversation.ErrNoActiveSession):
		text := "🤔 I did not understand that. Please use the menu buttons."
		if in.Kind == conversation.InputCancel {
			text = "Nothing to cancel."
		}
		h.send(ctx, chatID, text, h.mainMenu(ctx, userID))
	case err != nil:
		h.replyError(ctx, chatID, userID, err)
	default:
		h.sendReply(ctx, chatID, userID, reply)
	}
}

func (h *Handlers) sendReply(ctx context.Context, chatID, userID int64, reply conversation.Reply) {
	var markup any
	if reply.Finished || reply.Keyboard == conversation.KeyboardMain {
		markup = h.mainMenu(ctx, userID)
	} else {
		markup = formKeyboard(reply.Keyboard)
	}
	h.send(ctx, chatID, reply.Text, markup)
}

func (h *Handlers) accept(ctx context.Context, chatID, userID, orderID int64) {
	cmd, err := commands.NewAcceptOrderCommand(orderID, userID)
	if err == nil {
		_, err = h.lifecycle.Accept.Handle(ctx, cmd)
	}
	if errors.Is(err, errs.ErrConflict) {
		h.send(ctx, chatID, acceptConflictText(orderID, err), nil)
		return
	}
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, fmt.Sprintf("✅ You accepted order #%d. The sender has been notified.", orderID), nil)
	h.showOrder(ctx, chatID, userID, orderID)
}

func (h *Handlers) updateStage(ctx context.Context, chatID, userID int64, cb callback) {
	stage, err := order.ParseStage(cb.Arg)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.transition(ctx, chatID, userID, cb.ID, func() (*order.Order, error) {
		cmd, err := commands.NewUpdateStageCommand(cb.ID, userID, stage)
		if err != nil {
			return nil, err
		}
		return h.lifecycle.UpdateStage.Handle(ctx, cmd)
	}, "📍 Order #%d: "+stageLabel(stage)+". The sender has been notified.")
}

// transition runs a lifecycle command and reports the outcome with done,
// a format taking the order id.
func (h *Handlers) transition(
	ctx context.Context,
	chatID, userID, orderID int64,
	run func() (*order.Order, error),
	done string,
) {
	if _, err := run(); err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, fmt.Sprintf(done, orderID), nil)
	h.showOrder(ctx, chatID, userID, orderID)
}

func (h *Handlers) showWelcome(ctx context.Context, chatID, userID int64) {
	u, err := h.findUser(ctx, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, welcomeText(u), mainKeyboard(roleOf(u)))
}

func (h *Handlers) showProfile(ctx context.Context, chatID, userID int64) {
	u, err := h.findUser(ctx, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	if u == nil {
		h.send(ctx, chatID, "You are not registered yet.", mainKeyboard(nil))
		return
	}
	h.send(ctx, chatID, profileText(u), nil)
}

func (h *Handlers) showBoard(ctx context.Context, chatID, userID int64, pageNumber int) {
	q, err := queries.NewGetAvailableOrdersQuery(pageNumber)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	page, err := h.queries.AvailableOrders.Handle(ctx, q)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, boardText(page), inlineMarkup(boardKeyboard(page)))
}

func (h *Handlers) showActorOrders(ctx context.Context, chatID, userID int64) {
	q, err := queries.NewGetActorOrdersQuery(userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	orders, err := h.queries.ActorOrders.Handle(ctx, q)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, actorOrdersText(orders), inlineMarkup(ordersKeyboard(orders, nil)))
}

// acceptConflictText explains a lost accept by the status the order had.
func acceptConflictText(orderID int64, err error) string {
	status, _ := order.ConflictingStatus(err)
	switch {
	case status == order.Cancelled:
		return fmt.Sprintf("⚠️ Order #%d was cancelled by the sender.", orderID)
	case status.HasCarrier():
		return fmt.Sprintf("⚠️ Order #%d has already been taken by another carrier.", orderID)
	default:
		return fmt.Sprintf("⚠️ Order #%d is no longer available.", orderID)
	}
}

func (h *Handlers) showOrder(ctx context.Context, chatID, userID, orderID int64) {
	q, err := queries.NewGetOrderDetailsQuery(orderID, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	details, err := h.queries.OrderDetails.Handle(ctx, q)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	h.send(ctx, chatID, orderCard(details), inlineMarkup(orderActionsKeyboard(orderID, details.Actions)))
}

// sendDocuments sends every attachment of an order. A file that cannot be read
// or sent is logged and skipped so the rest still arrive.
func (h *Handlers) sendDocuments(ctx context.Context, chatID, userID, orderID int64) {
	q, err := queries.NewGetOrderDocumentsQuery(orderID, userID)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	docs, err := h.queries.OrderDocuments.Handle(ctx, q)
	if err != nil {
		h.replyError(ctx, chatID, userID, err)
		return
	}
	if len(docs) == 0 {
		h.send(ctx, chatID, fmt.Sprintf("📄 No documents are attached to order #%d yet.", orderID), nil)
		return
	}

	h.send(ctx, chatID, fmt.Sprintf("📄 Documents of order #%d: %d", orderID, len(docs)), nil)

	failed := 0
	for _, d := range docs {
		data, err := h.storage.Retrieve(ctx, d.Path())
		if err == nil {
			err = h.sender.SendFile(ctx, chatID, d.Kind(), d.Name(), data)
		}
		if err != nil {
			failed++
			h.logger.ErrorContext(ctx, "Failed to send document",
				"order_id", orderID, "document_id", d.ID(), "path", d.Path(), "error", err)
		}
	}

	if failed > 0 {
		h.send(ctx, chatID, fmt.Sprintf("⚠️ %d of %d documents could not be sent.", failed, len(docs)), nil)
	}
}

// mainMenu picks the menu for the user's role, or the start menu.
func (h *Handlers) mainMenu(ctx context.Context, userID int64) any {
	u, err := h.findUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "Cannot resolve menu for user", "user_id", userID, "error", err)
	}
	return mainKeyboard(roleOf(u))
}

// findUser returns nil without an error for users that have not registered.
func (h *Handlers) findUser(ctx context.Context, userID int64) (*user.User, error) {
	q, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return nil, err
	}
	u, err := h.queries.User.Handle(ctx, q)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return u, err
}

func (h *Handlers) replyError(ctx context.Context, chatID, userID int64, err error) {
	text, expected := errorText(err)
	if expected {
		h.logger.InfoContext(ctx, "Request refused", "user_id", userID, "error", err)
	} else {
		h.logger.ErrorContext(ctx, "Failed to handle request", "user_id", userID, "error", err)
	}
	h.send(ctx, chatID, text, nil)
}

func (h *Handlers) send(ctx context.Context, chatID int64, text string, markup any) {
	if err := h.sender.SendWithMarkup(ctx, chatID, text, markup); err != nil {
		h.logger.ErrorContext(ctx, "Failed to send message", "chat_id", chatID, "error", err)
	}
}

func roleOf(u *user.User) *kernel.Role {
	if u == nil {
		return nil
	}
	role := u.Role()
	return &role
}
