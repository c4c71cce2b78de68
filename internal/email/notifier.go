package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/qr"
)

type ConfigSource interface {
	Get() (domain.RaffleConfig, error)
}

// SMTPNotifier sends purchase confirmations over SMTP. The dialer is built
// from the runtime raffle config on every send, so credentials edited in
// the dashboard take effect immediately. Every send is bounded by the
// configured timeout and its outcome is reported as data, never as an
// error of the sale it follows.
type SMTPNotifier struct {
	config  ConfigSource
	baseURL string
	timeout time.Duration
}

func NewSMTPNotifier(config ConfigSource, baseURL string, timeout time.Duration) *SMTPNotifier {
	return &SMTPNotifier{
		config:  config,
		baseURL: baseURL,
		timeout: timeout,
	}
}

func (n *SMTPNotifier) SendTicket(ctx context.Context, ticket domain.Ticket, customer domain.Customer) domain.NotificationResult {
	return n.sendTickets(ctx, []domain.Ticket{ticket}, customer)
}

func (n *SMTPNotifier) SendTicketBatch(ctx context.Context, tickets []domain.Ticket, customer domain.Customer) domain.NotificationResult {
	return n.sendTickets(ctx, tickets, customer)
}

// Verify checks the SMTP connection with the stored settings.
func (n *SMTPNotifier) Verify(ctx context.Context) domain.NotificationResult {
	conf, err := n.config.Get()
	if err != nil {
		return failure(fmt.Sprintf("could not read config: %v", err))
	}

	dialer, result := n.dialer(conf)
	if dialer == nil {
		return result
	}

	done := make(chan error, 1)
	go func() {
		closer, err := dialer.Dial()
		if err == nil {
			_ = closer.Close()
		}
		done <- err
	}()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			return failure(fmt.Sprintf("SMTP connection failed: %v", err))
		}
		return domain.NotificationResult{Success: true, Message: "SMTP connection OK"}
	case <-ctx.Done():
		return failure("SMTP connection timed out")
	}
}

func (n *SMTPNotifier) sendTickets(ctx context.Context, tickets []domain.Ticket, customer domain.Customer) domain.NotificationResult {
	if customer.Email == "" {
		return failure("customer has no email on file")
	}

	conf, err := n.config.Get()
	if err != nil {
		return failure(fmt.Sprintf("could not read config: %v", err))
	}

	dialer, result := n.dialer(conf)
	if dialer == nil {
		return result
	}

	body, err := n.renderBody(conf, tickets, customer)
	if err != nil {
		return failure(fmt.Sprintf("could not render email: %v", err))
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", conf.SMTPUser, conf.RaffleName)
	m.SetHeader("To", customer.Email)
	m.SetHeader("Subject", subject(conf, tickets))
	m.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(m)
	}()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			zap.L().Warn("confirmation email failed",
				zap.String("to", customer.Email),
				zap.Error(err))
			return failure(fmt.Sprintf("send failed: %v", err))
		}
	case <-ctx.Done():
		zap.L().Warn("confirmation email timed out", zap.String("to", customer.Email))
		return failure("send timed out")
	}

	zap.L().Info("confirmation email sent",
		zap.String("to", customer.Email),
		zap.Int("tickets", len(tickets)))

	return domain.NotificationResult{
		Success: true,
		Message: fmt.Sprintf("email sent to %s", customer.Email),
	}
}

// dialer returns a configured gomail dialer, or nil plus the result to
// report when SMTP is not configured.
func (n *SMTPNotifier) dialer(conf domain.RaffleConfig) (*gomail.Dialer, domain.NotificationResult) {
	if conf.SMTPHost == "" || conf.SMTPUser == "" || conf.SMTPPass == "" {
		return nil, failure("SMTP not configured")
	}

	port := conf.SMTPPort
	if port == 0 {
		port = 587
	}

	dialer := gomail.NewDialer(conf.SMTPHost, port, conf.SMTPUser, conf.SMTPPass)
	dialer.SSL = port == 465

	return dialer, domain.NotificationResult{}
}

func subject(conf domain.RaffleConfig, tickets []domain.Ticket) string {
	if len(tickets) == 1 {
		return fmt.Sprintf("Tu Boleta #%s - %s", tickets[0].Number, conf.RaffleName)
	}
	return fmt.Sprintf("Tus %d Boletas - %s", len(tickets), conf.RaffleName)
}

type ticketView struct {
	domain.Ticket
	QRDataURL template.URL
	ViewURL   string
}

type bodyData struct {
	Config   domain.RaffleConfig
	Customer domain.Customer
	Tickets  []ticketView
	Total    string
}

func (n *SMTPNotifier) renderBody(conf domain.RaffleConfig, tickets []domain.Ticket, customer domain.Customer) (string, error) {
	views := make([]ticketView, 0, len(tickets))
	for _, t := range tickets {
		viewURL := fmt.Sprintf("%s/boleta/%s", n.baseURL, t.Number)
		dataURL, err := qr.DataURL(viewURL, 200)
		if err != nil {
			return "", fmt.Errorf("qr.DataURL -> %w", err)
		}
		views = append(views, ticketView{
			Ticket:    t,
			QRDataURL: template.URL(dataURL),
			ViewURL:   viewURL,
		})
	}

	data := bodyData{
		Config:   conf,
		Customer: customer,
		Tickets:  views,
		Total:    formatCOP(conf.TicketPrice * int64(len(tickets))),
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("bodyTemplate.Execute -> %w", err)
	}

	return buf.String(), nil
}

// formatCOP renders an amount in Colombian pesos with dot thousands
// separators, e.g. $ 120.000.
func formatCOP(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	var buf bytes.Buffer
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			buf.WriteByte('.')
		}
		buf.WriteRune(d)
	}
	return "$ " + buf.String()
}

var bodyTemplate = template.Must(template.New("ticket-email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0; padding:0; background:#f5f6fa; font-family:Arial, sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:30px 0;">
    <tr><td align="center">
      <table width="540" cellpadding="0" cellspacing="0" style="background:#fff; border-radius:12px; overflow:hidden;">
        <tr>
          <td style="background:#6c5ce7; padding:28px; text-align:center; color:#fff;">
            <h1 style="margin:0; font-size:26px;">{{.Config.RaffleName}}</h1>
            {{if .Config.Prize}}<p style="margin:8px 0 0; font-weight:700;">Premio: {{.Config.Prize}}</p>{{end}}
          </td>
        </tr>
        <tr>
          <td style="padding:24px; text-align:center;">
            <h2 style="margin:0 0 4px; color:#2d3436;">Hola {{.Customer.FullName}}</h2>
            <p style="color:#636e72;">Aquí está{{if gt (len .Tickets) 1}}n{{end}} tu{{if gt (len .Tickets) 1}}s{{end}} <strong>{{len .Tickets}} boleta(s)</strong></p>
            <p style="color:#6c5ce7; font-size:18px; font-weight:700;">Total: {{.Total}}</p>
            <p style="color:#636e72; font-size:13px;">CC: {{.Customer.NationalID}} | Sorteo: {{.Config.DrawDate}}</p>
          </td>
        </tr>
        {{range .Tickets}}
        <tr>
          <td style="padding:12px 24px; text-align:center; border-top:1px solid #eee;">
            <span style="font-size:28px; font-weight:900; color:#6c5ce7; letter-spacing:6px;">#{{.Number}}</span>
            <p style="margin:4px 0; font-family:monospace; font-size:12px; color:#636e72;">{{.Barcode}}</p>
            <a href="{{.ViewURL}}"><img src="{{.QRDataURL}}" width="120" height="120" alt="QR"></a>
          </td>
        </tr>
        {{end}}
        <tr>
          <td style="background:#f8f9fa; padding:16px; text-align:center; border-top:1px solid #eee;">
            <p style="margin:0; font-size:12px; color:#636e72;">
              {{if .Config.Organizer}}Organiza: <strong>{{.Config.Organizer}}</strong>{{end}}
              {{if .Config.Phone}} | Tel: {{.Config.Phone}}{{end}}
            </p>
            <p style="margin:6px 0 0; font-size:11px; color:#a0a0a0;">Conserve este correo como comprobante de su compra.</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

func failure(message string) domain.NotificationResult {
	return domain.NotificationResult{Success: false, Message: message}
}
