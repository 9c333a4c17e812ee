package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"fairway-booking/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<p>Dear {{.CustomerName}},</p>
<p>Thank you for booking <strong>{{.ItemName}}</strong> with us.</p>
<table>
<tr><td>Reference</td><td>{{.Reference}}</td></tr>
<tr><td>Dates</td><td>{{.CheckIn.Format "02 Jan 2006"}} to {{.CheckOut.Format "02 Jan 2006"}}</td></tr>
<tr><td>Guests</td><td>{{.Guests}}</td></tr>
<tr><td>Total</td><td>{{.Total}}</td></tr>
</table>
{{if .CheckoutURL}}<p><a href="{{.CheckoutURL}}">Complete your payment</a></p>{{end}}
<p>Ayubowan!</p>`))

type Mailer struct {
	cfg     utils.EmailConfig
	appName string
	log     *zap.Logger
}

func NewMailer(cfg utils.EmailConfig, appName string, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg:     cfg,
		appName: appName,
		log:     log.With(zap.String("notifier", "email")),
	}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// BookingConfirmation emails the customer a summary with the payment link.
func (m *Mailer) BookingConfirmation(ctx context.Context, b BookingSummary) error {
	if b.CustomerEmail == "" {
		return nil
	}

	var html strings.Builder
	if err := confirmationHTML.Execute(&html, b); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	text := fmt.Sprintf("Dear %s,\n\nThank you for booking %s.\nReference: %s\nDates: %s\nGuests: %d\nTotal: %s\n",
		b.CustomerName, b.ItemName, b.Reference, dates(b), b.Guests, b.Total)
	if b.CheckoutURL != "" {
		text += "\nComplete your payment: " + b.CheckoutURL + "\n"
	}

	subject := fmt.Sprintf("%s booking received: %s", m.appName, b.Reference)
	return m.send(ctx, b.CustomerEmail, subject, text, html.String())
}

// OpsBookingAlert emails the operations inbox.
func (m *Mailer) OpsBookingAlert(ctx context.Context, b BookingSummary) error {
	if m.cfg.OpsAddress == "" {
		return nil
	}
	subject := fmt.Sprintf("[%s] New booking %s", m.appName, b.Reference)
	return m.send(ctx, m.cfg.OpsAddress, subject, opsText(b), "")
}

func (m *Mailer) send(ctx context.Context, to, subject, text, html string) error {
	if !m.Enabled() {
		m.log.Debug("Email skipped (SMTP not configured)", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("email from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("email to %s: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	if html != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	m.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
