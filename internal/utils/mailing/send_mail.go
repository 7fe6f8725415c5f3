package mailing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"tmm-backend/entities"
	"tmm-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Enabled reports whether enough SMTP settings exist to send anything.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != ""
}

// Sender delivers a composed message.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewDialer(cfg MailConfig) (Sender, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	return gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPEmail, cfg.SMTPPassword), nil
}

var statusTemplate = template.Must(template.New("status").Parse(`<p>Hello {{.Name}},</p>
<p>Your Taste Mummies Made order <b>{{.OrderID}}</b> is now <b>{{.Status}}</b>.</p>
<p>Delivery date: {{.DeliveryDate}}<br>Total: GH₵ {{.Total}}</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">{{.AppURL}}</a></p>{{end}}
<p>Thank you for ordering with us.</p>`))

var statusSubjects = map[entities.OrderStatus]string{
	entities.StatusConfirmed: "Your order is confirmed",
	entities.StatusPreparing: "Your order is being prepared",
	entities.StatusDelivered: "Your order has been delivered",
	entities.StatusCancelled: "Your order has been cancelled",
}

// StatusMailer emails the customer when an order changes status. Orders
// without a customer email are skipped. It satisfies order.Notifier.
type StatusMailer struct {
	cfg    MailConfig
	sender Sender
}

func NewStatusMailer(cfg MailConfig, sender Sender) *StatusMailer {
	return &StatusMailer{cfg: cfg, sender: sender}
}

// Compose returns nil when there is nobody to tell.
func (m *StatusMailer) Compose(order *entities.Order) (*gomail.Message, error) {
	subject, ok := statusSubjects[order.Status]
	if !ok || order.CustomerEmail == "" {
		return nil, nil
	}

	body, err := m.renderBody(order)
	if err != nil {
		return nil, err
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	mailer.SetHeader("To", order.CustomerEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer, nil
}

func (m *StatusMailer) renderBody(order *entities.Order) (string, error) {
	var body bytes.Buffer
	err := statusTemplate.Execute(&body, map[string]string{
		"Name":         order.CustomerName,
		"OrderID":      order.ID.String(),
		"Status":       string(order.Status),
		"DeliveryDate": order.DeliveryDate.UTC().Format("2006-01-02"),
		"Total":        order.TotalAmount.StringFixed(2),
		"AppURL":       m.cfg.AppURL,
	})
	return body.String(), err
}

func (m *StatusMailer) OrderStatusChanged(_ context.Context, order *entities.Order, _ entities.OrderStatus) error {
	msg, err := m.Compose(order)
	if err != nil || msg == nil {
		return err
	}
	return m.sender.DialAndSend(msg)
}
