package communication

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Email struct {
	From        string
	To          []string
	Cc          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer sends raw MIME messages through SES.
type Mailer struct {
	client *ses.Client
}

func NewMailer(ctx context.Context) (*Mailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg)}, nil
}

// Send returns the SES message id.
func (m *Mailer) Send(ctx context.Context, email *Email) (string, error) {
	raw, err := BuildRawEmail(email)
	if err != nil {
		return "", err
	}

	res, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if res.MessageId == nil {
		return "", nil
	}
	return *res.MessageId, nil
}

func BuildRawEmail(email *Email) (*bytes.Buffer, error) {
	if email.From == "" || len(email.To) == 0 {
		return nil, errors.New("email needs a sender and at least one recipient")
	}

	var raw bytes.Buffer
	writer := multipart.NewWriter(&raw)

	headers := fmt.Sprintf("From: %s\r\n", email.From)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", "))
	if len(email.Cc) > 0 {
		headers += fmt.Sprintf("Cc: %s\r\n", strings.Join(email.Cc, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", email.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", writer.Boundary())
	headers += "\r\n"
	raw.WriteString(headers)

	// text/plain + text/html alternatives
	altBuf := &bytes.Buffer{}
	altWriter := multipart.NewWriter(altBuf)
	altPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + altWriter.Boundary()},
	})
	if err != nil {
		return nil, err
	}
	if email.Text != "" {
		if err := writeQuotedPrintable(altWriter, "text/plain; charset=UTF-8", email.Text); err != nil {
			return nil, err
		}
	}
	if email.HTML != "" {
		if err := writeQuotedPrintable(altWriter, "text/html; charset=UTF-8", email.HTML); err != nil {
			return nil, err
		}
	}
	if err := altWriter.Close(); err != nil {
		return nil, err
	}
	if _, err := altPart.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	for _, att := range email.Attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", fmt.Sprintf("%s; name=\"%s\"", att.ContentType, att.Filename))
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", att.Filename))
		h.Set("Content-Transfer-Encoding", "base64")

		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, err
		}
		b := make([]byte, base64.StdEncoding.EncodedLen(len(att.Content)))
		base64.StdEncoding.Encode(b, att.Content)

		// wrap lines at 76 chars
		for i := 0; i < len(b); i += 76 {
			end := min(i+76, len(b))
			part.Write(b[i:end])
			part.Write([]byte("\r\n"))
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return &raw, nil
}

func writeQuotedPrintable(w *multipart.Writer, contentType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}
