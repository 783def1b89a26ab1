package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
)

// Notifier renders and sends invitation lifecycle emails through a Mailer.
// It satisfies the orchestrator's notifier port.
type Notifier struct {
	mailer   Mailer
	renderer renderer

	// baseURL is the public web frontend, e.g. https://app.example.com.
	// Accept links are built under it.
	baseURL string
	appName string
}

// NewNotifier wires a Notifier to the given transport. baseURL must be the
// externally reachable frontend origin; a trailing slash is tolerated.
func NewNotifier(mailer Mailer, baseURL, appName string) *Notifier {
	return &Notifier{
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		appName: appName,
	}
}

// invitationData feeds the invitation and reminder templates.
type invitationData struct {
	AppName         string
	Email           string
	Role            string
	Department      string
	PersonalMessage string
	AcceptURL       string
	ExpiresAt       string
	ResendCount     int
}

// welcomeData feeds the welcome template.
type welcomeData struct {
	AppName string
	Name    string
	Email   string
	Role    string
}

func (n *Notifier) acceptURL(token string) string {
	return fmt.Sprintf("%s/invitations/accept?token=%s", n.baseURL, url.QueryEscape(token))
}

func (n *Notifier) invitationData(inv domain.Invitation, token string) invitationData {
	return invitationData{
		AppName:         n.appName,
		Email:           inv.Email,
		Role:            string(inv.Role),
		Department:      inv.Department,
		PersonalMessage: inv.PersonalMessage,
		AcceptURL:       n.acceptURL(token),
		ExpiresAt:       inv.ExpiresAt.Format(time.RFC1123),
		ResendCount:     inv.ResendCount,
	}
}

// InvitationCreated sends the initial invitation email carrying the accept
// link. This is the only channel the raw token travels through.
func (n *Notifier) InvitationCreated(ctx context.Context, inv domain.Invitation, token string) error {
	subject, html, text, err := n.renderer.render("invitation", n.invitationData(inv, token))
	if err != nil {
		return fmt.Errorf("render invitation email: %w", err)
	}
	return n.mailer.Send(ctx, inv.Email, subject, html, text)
}

// InvitationResent sends the reminder email with the rotated accept link.
func (n *Notifier) InvitationResent(ctx context.Context, inv domain.Invitation, token string) error {
	subject, html, text, err := n.renderer.render("reminder", n.invitationData(inv, token))
	if err != nil {
		return fmt.Errorf("render reminder email: %w", err)
	}
	return n.mailer.Send(ctx, inv.Email, subject, html, text)
}

// UserWelcomed sends the post-acceptance welcome email.
func (n *Notifier) UserWelcomed(ctx context.Context, user domain.User) error {
	subject, html, text, err := n.renderer.render("welcome", welcomeData{
		AppName: n.appName,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
	})
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	return n.mailer.Send(ctx, user.Email, subject, html, text)
}
