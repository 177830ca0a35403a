package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/wneessen/go-mail"
)

const confirmationTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #e91e63; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">Order Confirmation</h1>
    <p style="margin: 5px 0 0;">Order #{{.OrderNumber}}</p>
  </div>
  <div style="padding: 20px; border: 1px solid #e0e0e0; border-top: none;">
    <p>Dear {{.CustomerInfo.FullName}},</p>
    <p>Thank you for your purchase! We're processing your order and will ship it soon.</p>
    <div style="background-color: #f9f9f9; padding: 15px; margin: 20px 0;">
      <h2 style="margin-top: 0; font-size: 18px;">Order Summary</h2>
      <p>
        <strong>{{.Product.Name}}</strong><br>
        Color: {{.Product.Color}}, Size: {{.Product.Size}}<br>
        {{.Product.Quantity}} &times; &#8377;{{.Product.Price}}
      </p>
      <p style="font-weight: bold;">Total: &#8377;{{.TotalAmount}}</p>
    </div>
    <p>
      Shipping to: {{.CustomerInfo.Address}}, {{.CustomerInfo.City}},
      {{.CustomerInfo.State}} {{.CustomerInfo.ZipCode}}
    </p>
    <p>Thank you for shopping with us!</p>
    <p>Sincerely,<br>The DoomsWear Team</p>
  </div>
</div>`

const failureTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #f44336; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">Payment Failed</h1>
    <p style="margin: 5px 0 0;">Order #{{.OrderNumber}}</p>
  </div>
  <div style="padding: 20px; border: 1px solid #e0e0e0; border-top: none;">
    <p>Dear {{.CustomerInfo.FullName}},</p>
    <p>We're sorry, but we were unable to process your payment for the following order:</p>
    <div style="background-color: #f9f9f9; padding: 15px; margin: 20px 0;">
      <h2 style="margin-top: 0; font-size: 18px;">Order Summary</h2>
      <p>
        <strong>{{.Product.Name}}</strong><br>
        Color: {{.Product.Color}}, Size: {{.Product.Size}}<br>
        {{.Product.Quantity}} &times; &#8377;{{.Product.Price}}
      </p>
      <p style="font-weight: bold;">Total: &#8377;{{.TotalAmount}}</p>
    </div>
    <p><strong>Reason for failure:</strong>
      {{if eq .Status "declined"}}Your payment was declined by your bank or card issuer.{{else}}We encountered a technical issue while processing your payment.{{end}}
    </p>
    <p>You can try again with a different payment method.</p>
    <p>Sincerely,<br>The DoomsWear Team</p>
  </div>
</div>`

// Mailer delivers order emails over SMTP.
type Mailer struct {
	client      *mail.Client
	from        string
	confirmTmpl *template.Template
	failTmpl    *template.Template
}

func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, err
	}
	return &Mailer{
		client:      client,
		from:        from,
		confirmTmpl: template.Must(template.New("confirmation").Parse(confirmationTemplate)),
		failTmpl:    template.Must(template.New("failure").Parse(failureTemplate)),
	}, nil
}

func (m *Mailer) OrderConfirmed(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Order Confirmation - #%s", order.OrderNumber)
	return m.send(ctx, order, m.confirmTmpl, subject)
}

func (m *Mailer) OrderFailed(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Payment Failed - Order #%s", order.OrderNumber)
	return m.send(ctx, order, m.failTmpl, subject)
}

func (m *Mailer) send(ctx context.Context, order *models.Order, tmpl *template.Template, subject string) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, order); err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(order.CustomerInfo.Email); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	return m.client.DialAndSendWithContext(ctx, msg)
}
