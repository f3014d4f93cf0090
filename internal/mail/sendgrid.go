package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

// DefaultSendGridHost is the public SendGrid API endpoint.
const DefaultSendGridHost = "https://api.sendgrid.com"

const sendEndpoint = "/v3/mail/send"

// SendGridClient sends messages through the SendGrid v3 Mail Send API.
type SendGridClient struct {
	apiKey string
	host   string
}

// NewSendGridClient creates a SendGrid client for the given API key.
// An empty key is a configuration error, reported as apperrors.ErrMailNotConfigured.
// An empty host selects DefaultSendGridHost.
func NewSendGridClient(apiKey, host string) (*SendGridClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.ErrMailNotConfigured
	}
	if host == "" {
		host = DefaultSendGridHost
	}
	return &SendGridClient{apiKey: apiKey, host: host}, nil
}

// Send posts msg to SendGrid. Any non-2xx response is returned as an error
// carrying the status code and the response body.
func (c *SendGridClient) Send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(c.apiKey, sendEndpoint, c.host)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(buildV3Mail(msg))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}

// buildV3Mail maps a Message onto the SendGrid payload. CC addresses equal to
// the recipient are dropped because SendGrid rejects duplicate recipients.
func buildV3Mail(msg Message) *sgmail.SGMailV3 {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(msg.FromName, msg.From))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", msg.To))
	seen := map[string]bool{strings.ToLower(msg.To): true}
	for _, cc := range msg.CC {
		key := strings.ToLower(strings.TrimSpace(cc))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		p.AddCCs(sgmail.NewEmail("", cc))
	}
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/plain", msg.Text))

	for _, a := range msg.Attachments {
		att := sgmail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		m.AddAttachment(att)
	}

	return m
}
