// Package mail sends templated HTML notifications through SendGrid.
package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrDisabled reports that no email provider is configured.
var ErrDisabled = errors.New("mail: sending disabled, no API key configured")

// Message is one outbound email. Attachment is optional PDF bytes.
type Message struct {
	Subject        string
	To             []string
	HTML           string
	Attachment     []byte
	AttachmentName string
}

// Sender delivers a message. Call sites decide whether a failure is
// best-effort (log and swallow) or the primary purpose of the request
// (surface to the caller).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender is the production Sender.
type SendGridSender struct {
	client      *sendgrid.Client
	senderName  string
	senderEmail string
}

func NewSendGridSender(apiKey, senderEmail string) *SendGridSender {
	return &SendGridSender{
		client:      sendgrid.NewSendClient(apiKey),
		senderName:  "RespireX",
		senderEmail: senderEmail,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(s.senderName, s.senderEmail))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", msg.HTML))

	if len(msg.Attachment) > 0 {
		name := msg.AttachmentName
		if name == "" {
			name = "Report.pdf"
		}
		a := sgmail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(msg.Attachment))
		a.SetType("application/pdf")
		a.SetFilename(name)
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail: send: provider returned status %d", resp.StatusCode)
	}
	return nil
}

// Disabled is the Sender used when no API key is configured. Every send
// fails with ErrDisabled so best-effort call sites degrade quietly and
// explicit email requests surface a clear error.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrDisabled
}
