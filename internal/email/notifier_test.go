package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

type fixedConfig struct {
	conf domain.RaffleConfig
}

func (c *fixedConfig) Get() (domain.RaffleConfig, error) {
	return c.conf, nil
}

func newNotifier(conf domain.RaffleConfig) *SMTPNotifier {
	return NewSMTPNotifier(&fixedConfig{conf: conf}, "https://rifas.example.com", 2*time.Second)
}

func TestSendTicket_CustomerWithoutEmail(t *testing.T) {
	notifier := newNotifier(domain.RaffleConfig{})

	result := notifier.SendTicket(context.Background(), domain.Ticket{Number: "0001"}, domain.Customer{FullName: "María Pérez"})

	assert.False(t, result.Success)
	assert.Equal(t, "customer has no email on file", result.Message)
}

func TestSendTicket_SMTPNotConfigured(t *testing.T) {
	notifier := newNotifier(domain.RaffleConfig{})

	result := notifier.SendTicket(context.Background(),
		domain.Ticket{Number: "0001"},
		domain.Customer{FullName: "María Pérez", Email: "maria@example.com"})

	assert.False(t, result.Success)
	assert.Equal(t, "SMTP not configured", result.Message)
}

func TestVerify_SMTPNotConfigured(t *testing.T) {
	notifier := newNotifier(domain.RaffleConfig{})

	result := notifier.Verify(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "SMTP not configured", result.Message)
}

func TestDialer_Defaults(t *testing.T) {
	notifier := newNotifier(domain.RaffleConfig{})

	dialer, _ := notifier.dialer(domain.RaffleConfig{
		SMTPHost: "smtp.example.com",
		SMTPUser: "rifas",
		SMTPPass: "secret",
	})

	require.NotNil(t, dialer)
	assert.Equal(t, 587, dialer.Port)
	assert.False(t, dialer.SSL)

	dialer, _ = notifier.dialer(domain.RaffleConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 465,
		SMTPUser: "rifas",
		SMTPPass: "secret",
	})

	require.NotNil(t, dialer)
	assert.True(t, dialer.SSL)
}

func TestRenderBody(t *testing.T) {
	notifier := newNotifier(domain.RaffleConfig{})

	conf := domain.DefaultRaffleConfig()
	tickets := []domain.Ticket{
		{Number: "0001", Barcode: "RIFA-0001"},
		{Number: "0002", Barcode: "RIFA-0002"},
	}
	customer := domain.Customer{FullName: "María Pérez", NationalID: "1023456789", Email: "maria@example.com"}

	body, err := notifier.renderBody(conf, tickets, customer)
	require.NoError(t, err)

	assert.Contains(t, body, conf.RaffleName)
	assert.Contains(t, body, "María Pérez")
	assert.Contains(t, body, "#0001")
	assert.Contains(t, body, "#0002")
	assert.Contains(t, body, "RIFA-0002")
	assert.Contains(t, body, "https://rifas.example.com/boleta/0001")
	assert.Contains(t, body, "data:image/png;base64,")
	// Two tickets at the default price.
	assert.Contains(t, body, "$ 240.000")
}

func TestSubject(t *testing.T) {
	conf := domain.RaffleConfig{RaffleName: "Rifa de Prueba"}

	single := subject(conf, []domain.Ticket{{Number: "0042"}})
	assert.Equal(t, "Tu Boleta #0042 - Rifa de Prueba", single)

	batch := subject(conf, []domain.Ticket{{Number: "0001"}, {Number: "0002"}})
	assert.True(t, strings.HasPrefix(batch, "Tus 2 Boletas"))
}

func TestFormatCOP(t *testing.T) {
	assert.Equal(t, "$ 0", formatCOP(0))
	assert.Equal(t, "$ 999", formatCOP(999))
	assert.Equal(t, "$ 1.000", formatCOP(1000))
	assert.Equal(t, "$ 120.000", formatCOP(120000))
	assert.Equal(t, "$ 1.200.000", formatCOP(1200000))
}
