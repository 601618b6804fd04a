// Package mailer sends transactional email through the Resend REST API.
package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/httpclient"

	"github.com/go-resty/resty/v2"
)

var ErrAPIKeyMissing = errors.New("RESEND_API_KEY is not configured")

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender is what the modules depend on.
type Sender interface {
	Send(ctx context.Context, msg Message) (id string, err error)
}

type Mailer struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	from    string
}

func New(client *resty.Client, cfg config.Email) *Mailer {
	return &Mailer{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		from:    cfg.From,
	}
}

// Default uses the shared HTTP client and the current email settings.
func Default() *Mailer {
	client := httpclient.Client
	if client == nil {
		client = httpclient.New()
	}
	return New(client, config.Get().Email)
}

type sendRequest struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Attachments []sendAttachment `json:"attachments,omitempty"`
}

type sendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (m *Mailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.apiKey == "" {
		return "", ErrAPIKeyMissing
	}
	if len(msg.To) == 0 {
		return "", errors.New("email has no recipient")
	}

	body := sendRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		body.Attachments = append(body.Attachments, sendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	var (
		result sendResponse
		failed apiError
	)
	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&failed).
		Post(m.baseURL + "/emails")
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	if resp.IsError() {
		if failed.Message == "" {
			failed.Message = resp.Status()
		}
		return "", fmt.Errorf("send email: provider returned %d: %s", resp.StatusCode(), failed.Message)
	}
	return result.ID, nil
}
