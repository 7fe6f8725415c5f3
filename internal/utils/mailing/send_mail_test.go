package mailing

import (
	"context"
	"errors"
	"testing"
	"time"

	"tmm-backend/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	return s.err
}

func testOrder(status entities.OrderStatus, email string) *entities.Order {
	return &entities.Order{
		ID:            uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		CustomerName:  "Ama",
		CustomerEmail: email,
		DeliveryDate:  time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("21"),
		Status:        status,
	}
}

var cfg = MailConfig{SMTPEmail: "orders@tmm.example", SMTPSender: "Taste Mummies Made", AppURL: "https://tmm.example"}

func TestComposeStatusMail(t *testing.T) {
	m := NewStatusMailer(cfg, &recordingSender{})

	msg, err := m.Compose(testOrder(entities.StatusConfirmed, "ama@example.com"))
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, []string{"ama@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your order is confirmed"}, msg.GetHeader("Subject"))

	body, err := m.renderBody(testOrder(entities.StatusConfirmed, "ama@example.com"))
	require.NoError(t, err)
	assert.Contains(t, body, "0f8fad5b-d9cb-469f-a165-70867728950e")
	assert.Contains(t, body, "21.00")
	assert.Contains(t, body, "2026-10-20")
}

func TestComposeSkipsWithoutRecipient(t *testing.T) {
	m := NewStatusMailer(cfg, &recordingSender{})

	msg, err := m.Compose(testOrder(entities.StatusConfirmed, ""))
	require.NoError(t, err)
	assert.Nil(t, msg)

	msg, err = m.Compose(testOrder(entities.StatusPending, "ama@example.com"))
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestOrderStatusChangedSends(t *testing.T) {
	sender := &recordingSender{}
	m := NewStatusMailer(cfg, sender)

	require.NoError(t, m.OrderStatusChanged(context.Background(), testOrder(entities.StatusDelivered, "ama@example.com"), entities.StatusPreparing))
	assert.Len(t, sender.sent, 1)

	require.NoError(t, m.OrderStatusChanged(context.Background(), testOrder(entities.StatusDelivered, ""), entities.StatusPreparing))
	assert.Len(t, sender.sent, 1)

	sender.err = errors.New("535 auth failed")
	assert.Error(t, m.OrderStatusChanged(context.Background(), testOrder(entities.StatusCancelled, "ama@example.com"), entities.StatusPending))
}

func TestNewDialerRejectsBadPort(t *testing.T) {
	_, err := NewDialer(MailConfig{SMTPPort: "smtp"})
	assert.Error(t, err)

	d, err := NewDialer(MailConfig{SMTPHost: "localhost", SMTPPort: "2525"})
	require.NoError(t, err)
	assert.NotNil(t, d)
}
