package utils

import (
	"fmt"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email through the configured SMTP server
func SendEmail(to, subject, body string) error {
	cfg := config.App
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOrderConfirmation mails the order summary after a successful
// checkout. Failures are the caller's to log; a lost email never fails
// the order.
func SendOrderConfirmation(to string, order *models.Order) error {
	var itemRows string
	for _, item := range order.OrderItems {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		itemRows += fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%.2f</td><td>%.2f</td></tr>",
			name, item.Quantity, item.Price, item.Total)
	}

	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Your order <strong>%s</strong> has been placed successfully.</p>
		<table border="1" cellpadding="6" cellspacing="0">
			<tr><th>Item</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr>
			%s
		</table>
		<p>Subtotal: %.2f<br/>
		Discount: %.2f<br/>
		Shipping: %.2f<br/>
		Tax: %.2f<br/>
		<strong>Total: %.2f</strong></p>`,
		order.OrderNumber, itemRows,
		order.Subtotal, order.CouponDiscount, order.ShippingCharge, order.Tax, order.FinalTotal)

	return SendEmail(to, fmt.Sprintf("Order confirmation %s", order.OrderNumber), body)
}
