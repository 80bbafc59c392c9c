package intake

import (
	"context"
	"fmt"
	"html"

	"github.com/wneessen/go-mail"

	"github.com/Bitlatte/resonant/internal/config"
)

const implicitTLSPort = 465

const preStyle = "font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, 'Liberation Mono', 'Courier New', monospace; white-space: pre-wrap;"

// MailSender is the part of *mail.Client the email notifier uses.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailNotifier sends submissions to the studio inbox over SMTP.
type EmailNotifier struct {
	from   string
	to     string
	sender MailSender
}

// NewEmailNotifier builds an SMTP client from cfg. Port 465 uses implicit
// TLS, every other port upgrades with STARTTLS when the server offers it.
func NewEmailNotifier(cfg config.MailConfig) (*EmailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return NewEmailNotifierWithSender(cfg.From, cfg.To, client), nil
}

// NewEmailNotifierWithSender wires an existing sender.
func NewEmailNotifierWithSender(from, to string, sender MailSender) *EmailNotifier {
	return &EmailNotifier{from: from, to: to, sender: sender}
}

// Channel implements Notifier.
func (e *EmailNotifier) Channel() string { return ChannelEmail }

// Notify implements Notifier.
func (e *EmailNotifier) Notify(ctx context.Context, n Notification) error {
	msg, err := e.Compose(n)
	if err != nil {
		return err
	}
	if err := e.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Compose builds the message for n: a plain-text body with an HTML
// alternative wrapping the same text in a preformatted block.
func (e *EmailNotifier) Compose(n Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(e.from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", e.from, err)
	}
	if err := msg.To(e.to); err != nil {
		return nil, fmt.Errorf("set recipient %q: %w", e.to, err)
	}
	msg.Subject(Subject)

	text := EmailText(n)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, `<pre style="`+preStyle+`">`+html.EscapeString(text)+`</pre>`)
	return msg, nil
}

// EmailText is the plain-text mail body.
func EmailText(n Notification) string {
	return n.Summary + "\n\nProject details:\n" + n.Description
}
