package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"burger-shop/config"
	"burger-shop/models"

	"gopkg.in/gomail.v2"
)

// Notifier is told about orders once they are committed.
type Notifier interface {
	OrderPlaced(ctx context.Context, user models.User, order models.Order) error
}

type noopNotifier struct{}

func (noopNotifier) OrderPlaced(context.Context, models.User, models.Order) error { return nil }

type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewNotifier returns an SMTP notifier, or one that does nothing when SMTP is not configured.
func NewNotifier(cfg *config.Config) Notifier {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return noopNotifier{}
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}
}

func (n *EmailNotifier) OrderPlaced(ctx context.Context, user models.User, order models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s", order.ID))
	m.SetBody("text/html", orderConfirmationBody(user, order))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func orderConfirmationBody(user models.User, order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		options := ""
		if len(item.Options) > 0 {
			options = " (" + html.EscapeString(strings.Join(item.Options, ", ")) + ")"
		}
		fmt.Fprintf(&rows, "<tr><td>%s%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(item.ProductName), options, item.Quantity, formatRupiah(item.LineTotal()))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Order Confirmation</h2>
    <p>Hi %s, thank you for your order!</p>
    <p><strong>Order Number:</strong> %s</p>
    <table cellpadding="6">
        <tr><th align="left">Item</th><th>Qty</th><th>Subtotal</th></tr>
        %s
    </table>
    <p><strong>Total Amount:</strong> IDR %s</p>
    <p>Your order has been received and is being processed.</p>
</body>
</html>
`, html.EscapeString(user.Username), order.ID, rows.String(), formatRupiah(order.TotalPrice))
}

func formatRupiah(amount int) string {
	str := fmt.Sprintf("%d", amount)
	n := len(str)
	if n <= 3 {
		return str
	}

	var b strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
