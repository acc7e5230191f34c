// Package notify delivers state-change emails to businesses, couriers and
// operations staff. Delivery is best-effort: the dispatcher runs after the
// transaction commits and failures are logged, never surfaced.
package notify

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailConfig carries the OAuth credentials for the sending account. The
// refresh token is obtained once through the standard consent flow.
type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Sender       string
}

// GmailNotificationService sends notification emails through the Gmail API.
type GmailNotificationService struct {
	service *gmail.Service
	sender  string
}

// NewGmailNotificationService creates a Gmail-backed notification service.
// The token source refreshes access tokens automatically from the stored
// refresh token.
func NewGmailNotificationService(ctx context.Context, cfg GmailConfig) (*GmailNotificationService, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &GmailNotificationService{
		service: service,
		sender:  cfg.Sender,
	}, nil
}

// Notify sends one email to the recipient.
func (s *GmailNotificationService) Notify(ctx context.Context, recipientEmail, subject, body string) error {
	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.sender, recipientEmail, subject, body,
	)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := s.service.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send notification to %s: %w", recipientEmail, err)
	}
	return nil
}
