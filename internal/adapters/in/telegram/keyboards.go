package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// Reply keyboard buttons.
const (
	btnRegister    = "🚀 Register"
	btnInfo        = "ℹ️ Information"
	btnProfile     = "🧑‍💼 My profile"
	btnCreateOrder = "📝 Create order"
	btnFindOrders  = "🔍 Find orders"
	btnMyOrders    = "📋 My orders"
	btnEditProfile = "✏️ Edit profile"
	btnSkip        = "⏭️ Skip"
	btnCancel      = "❌ Cancel"
	btnFinish      = "✅ Finish"
	btnSharePhone  = "📱 Share phone number"
)

// mainKeyboard is the menu outside of forms. Unregistered users get the start menu.
func mainKeyboard(role *kernel.Role) tgbotapi.ReplyKeyboardMarkup {
	if role == nil {
		return replyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnRegister)),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnInfo)),
		)
	}

	primary := btnFindOrders
	if *role == kernel.RoleSender {
		primary = btnCreateOrder
	}
	return replyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnProfile),
			tgbotapi.NewKeyboardButton(primary),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyOrders),
			tgbotapi.NewKeyboardButton(btnEditProfile),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnInfo)),
	)
}

// formKeyboard maps the controls a form step asks for. KeyboardMain returns nil
// because the main menu depends on who is asking.
func formKeyboard(k conversation.Keyboard) any {
	cancelRow := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel))

	switch k {
	case conversation.KeyboardRoles:
		return replyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(conversation.RoleLabel(kernel.RoleSender)),
				tgbotapi.NewKeyboardButton(conversation.RoleLabel(kernel.RoleCarrier)),
			),
			cancelRow,
		)
	case conversation.KeyboardCancel:
		return replyKeyboard(cancelRow)
	case conversation.KeyboardSkip:
		return replyKeyboard(tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancel),
		))
	case conversation.KeyboardPhone:
		return replyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(btnSharePhone)),
			cancelRow,
		)
	case conversation.KeyboardCargoTypes:
		types := order.CargoTypes()
		rows := make([][]tgbotapi.KeyboardButton, 0, len(types)/2+2)
		for i := 0; i < len(types); i += 2 {
			row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(conversation.CargoTypeLabel(types[i])))
			if i+1 < len(types) {
				row = append(row, tgbotapi.NewKeyboardButton(conversation.CargoTypeLabel(types[i+1])))
			}
			rows = append(rows, row)
		}
		return replyKeyboard(append(rows, cancelRow)...)
	case conversation.KeyboardConfirm:
		return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", encodeCallback(cbFormConfirm, 0)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", encodeCallback(cbFormReject, 0)),
		))
	case conversation.KeyboardDocuments:
		return replyKeyboard(tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFinish),
			tgbotapi.NewKeyboardButton(btnCancel),
		))
	case conversation.KeyboardProfileFields:
		var rows [][]tgbotapi.KeyboardButton
		fields := conversation.ProfileFields()
		for i := 0; i < len(fields); i += 2 {
			row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(conversation.ProfileFieldLabel(fields[i])))
			if i+1 < len(fields) {
				row = append(row, tgbotapi.NewKeyboardButton(conversation.ProfileFieldLabel(fields[i+1])))
			}
			rows = append(rows, row)
		}
		return replyKeyboard(append(rows, cancelRow)...)
	default:
		return nil
	}
}

func replyKeyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// orderActionsKeyboard lays out one button per available action.
func orderActionsKeyboard(orderID int64, actions []order.Action) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range actions {
		label, action := actionButton(a)
		if action == "" {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, encodeCallback(action, orderID)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func actionButton(a order.Action) (label, action string) {
	switch a {
	case order.ActionAccept:
		return "✅ Accept order", cbAccept
	case order.ActionSetStage:
		return "📍 Update stage", cbStageMenu
	case order.ActionMarkDelivered:
		return "🚚 Mark as delivered", cbDeliver
	case order.ActionConfirmDelivery:
		return "🏁 Confirm receipt", cbConfirmDelivery
	case order.ActionCancel:
		return "❌ Cancel order", cbCancelOrder
	case order.ActionAddDocument:
		return "📎 Add documents", cbAddDocument
	case order.ActionViewDocuments:
		return "📄 Documents", cbDocuments
	default:
		return "", ""
	}
}

func stagesKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, st := range order.Stages() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(stageLabel(st), encodeCallback(cbStage, orderID, st.String())),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to order", encodeCallback(cbView, orderID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ordersKeyboard has one button per order plus an optional navigation row.
func ordersKeyboard(orders []*order.Order, nav []tgbotapi.InlineKeyboardButton) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, o := range orders {
		c := o.Cargo()
		label := fmt.Sprintf("#%d · %s → %s", o.ID(), c.PickupAddress, c.DeliveryAddress)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncate(label, 60), encodeCallback(cbView, o.ID())),
		))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func boardKeyboard(page queries.Page[*order.Order]) *tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if page.TotalPages > 1 {
		if page.HasPrev() {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", encodeCallback(cbPage, int64(page.Number-1))))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d/%d", page.Number, page.TotalPages), encodeCallback(cbNoop, 0)))
		if page.HasNext() {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", encodeCallback(cbPage, int64(page.Number+1))))
		}
	}
	return ordersKeyboard(page.Items, nav)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
