package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

const (
	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04"
	notProvided    = "not provided"
)

const helpText = `ℹ️ How it works

📦 Senders publish shipment requests: cargo type, weight, route and pickup date.
🚚 Carriers browse available orders and accept the ones they can take.

After acceptance the carrier reports the stage of the trip and marks the order as delivered. The sender confirms receipt and the order is completed. Both sides can attach photos and documents to an order.

Use /cancel to leave any form.`

// statusLabel shows accepted orders with a reported stage as being in transit.
func statusLabel(o *order.Order) string {
	switch o.Status() {
	case order.New:
		return "🆕 New"
	case order.Accepted:
		if o.Stage().IsSet() {
			return "🚚 In transit"
		}
		return "✅ Accepted"
	case order.Delivered:
		return "📦 Delivered, awaiting confirmation"
	case order.Completed:
		return "🏁 Completed"
	case order.Cancelled:
		return "❌ Cancelled"
	default:
		return o.Status().String()
	}
}

func stageLabel(st order.Stage) string {
	switch st {
	case order.StageLoading:
		return "🏗 Loading"
	case order.StageOnRoute:
		return "🛣 On the way"
	case order.StageAwaitingUnload:
		return "⏳ Awaiting unloading"
	case order.StageUnloaded:
		return "✅ Unloaded"
	default:
		return "not reported"
	}
}

// orderLine is the compact form used in lists.
func orderLine(o *order.Order) string {
	c := o.Cargo()
	return fmt.Sprintf("#%d · %s · %s kg\n%s → %s · %s\n%s",
		o.ID(), conversation.CargoTypeLabel(c.Type), c.Weight.String(),
		c.PickupAddress, c.DeliveryAddress, c.PickupDate, statusLabel(o))
}

func orderCard(d queries.GetOrderDetailsQueryResponse) string {
	o := d.Order
	c := o.Cargo()

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Order #%d\n", o.ID())
	fmt.Fprintf(&b, "Status: %s\n", statusLabel(o))
	if o.Stage().IsSet() {
		fmt.Fprintf(&b, "Stage: %s\n", stageLabel(o.Stage()))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Cargo: %s\n", conversation.CargoTypeLabel(c.Type))
	fmt.Fprintf(&b, "Weight: %s kg\n", c.Weight.String())
	fmt.Fprintf(&b, "Dimensions: %s\n", valueOr(c.Dimensions))
	fmt.Fprintf(&b, "From: %s\n", c.PickupAddress)
	fmt.Fprintf(&b, "To: %s\n", c.DeliveryAddress)
	fmt.Fprintf(&b, "Pickup date: %s\n", c.PickupDate)
	fmt.Fprintf(&b, "Comment: %s\n", valueOr(c.Comment))
	fmt.Fprintf(&b, "Created: %s", o.CreatedAt().Format(dateTimeLayout))

	if d.Counterparty != nil {
		title := "Carrier"
		if d.Viewer != nil && o.IsCarrier(d.Viewer.ID()) {
			title = "Sender"
		}
		fmt.Fprintf(&b, "\n\n%s: %s\n%s", title, d.Counterparty.FullName(), contactLines(d.Counterparty))
	}
	return b.String()
}

func contactLines(u *user.User) string {
	lines := []string{"Phone: " + u.Phone().String()}
	if u.Email() != nil {
		lines = append(lines, "Email: "+u.Email().String())
	}
	if u.Company() != nil {
		lines = append(lines, "Company: "+*u.Company())
	}
	return strings.Join(lines, "\n")
}

func boardText(page queries.Page[*order.Order]) string {
	if page.TotalItems == 0 {
		return "🔍 There are no available orders right now. Check back later."
	}
	if len(page.Items) == 0 {
		return fmt.Sprintf("🔍 Page %d is empty. There are %d pages of available orders.", page.Number, page.TotalPages)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Available orders: %d (page %d/%d)\n", page.TotalItems, page.Number, page.TotalPages)
	for _, o := range page.Items {
		b.WriteString("\n")
		b.WriteString(orderLine(o))
		b.WriteString("\n")
	}
	b.WriteString("\nTap an order to open it.")
	return b.String()
}

func actorOrdersText(orders []*order.Order) string {
	if len(orders) == 0 {
		return "📋 You have no orders yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Your orders: %d\n", len(orders))
	for _, o := range orders {
		b.WriteString("\n")
		b.WriteString(orderLine(o))
		b.WriteString("\n")
	}
	return b.String()
}

func profileText(u *user.User) string {
	company := notProvided
	if u.Company() != nil {
		company = *u.Company()
	}
	email := notProvided
	if u.Email() != nil {
		email = u.Email().String()
	}
	username := notProvided
	if u.Username() != "" {
		username = "@" + u.Username()
	}

	return fmt.Sprintf("🧑‍💼 Your profile\n\nRole: %s\nName: %s\nUsername: %s\nPhone: %s\nEmail: %s\nCompany: %s\nRegistered: %s",
		conversation.RoleName(u.Role()), u.FullName(), username, u.Phone().String(), email, company,
		u.RegisteredAt().Format(dateLayout))
}

func welcomeText(u *user.User) string {
	if u == nil {
		return "👋 Welcome to the freight exchange!\n\n" +
			"Senders publish shipment requests and carriers pick them up. Register to get started."
	}
	return fmt.Sprintf("👋 Welcome back, %s!", u.FullName())
}

// errorText turns a failed operation into a message for the user. The second
// result is false for errors that are not the user's doing.
func errorText(err error) (string, bool) {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return "⛔ You are not allowed to do this.", true
	case errors.Is(err, errs.ErrConflict):
		return "⚠️ This order has already changed. Open it again to see its current state.", true
	case errors.Is(err, errs.ErrObjectNotFound):
		return "❌ Not found. It may have been removed, or you are not registered yet.", true
	case errs.IsValidation(err):
		return "❌ The request is invalid. Please try again.", true
	default:
		return "⚠️ Something went wrong. Please try again later.", false
	}
}

func valueOr(s *string) string {
	if s == nil {
		return notProvided
	}
	return *s
}

// inlineMarkup avoids putting a typed nil into the message markup.
func inlineMarkup(kb *tgbotapi.InlineKeyboardMarkup) any {
	if kb == nil {
		return nil
	}
	return *kb
}
