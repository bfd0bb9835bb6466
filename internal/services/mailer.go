package services

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/quote"
)

// ArchiveMailer emails a copy of every issued quote to the archive inbox.
type ArchiveMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
	company  string
}

// NewArchiveMailer creates an ArchiveMailer from the SMTP settings.
func NewArchiveMailer(cfg config.SMTPConfig, companyName string) *ArchiveMailer {
	return &ArchiveMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		to:       cfg.ArchiveEmail,
		company:  companyName,
	}
}

func (m *ArchiveMailer) Send(ctx context.Context, doc quote.Document) error {
	msg, err := m.message(doc)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if m.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.username),
			gomail.WithPassword(m.password),
		)
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *ArchiveMailer) message(doc quote.Document) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.company, m.from); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(fmt.Sprintf("Cotización %s", doc.Filename))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf("Cotización enviada a %s.\n\n%s", doc.UserID, doc.Caption))
	msg.AttachReader(doc.Filename, bytes.NewReader(doc.Content))
	return msg, nil
}
