package service

import (
	"context"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
)

// Notifier dispatches invitation emails. Implementations are best-effort:
// the orchestrator logs failures and reports them as a partial-success flag,
// it never fails a state transition over one.
type Notifier interface {
	// InvitationCreated sends the invitation email carrying the raw token.
	// This is the only place the token leaves the process.
	InvitationCreated(ctx context.Context, inv domain.Invitation, token string) error

	// InvitationResent re-sends the invitation email for a still-pending
	// invitation.
	InvitationResent(ctx context.Context, inv domain.Invitation, token string) error

	// UserWelcomed sends the post-acceptance welcome email.
	UserWelcomed(ctx context.Context, user domain.User) error
}

// NopNotifier discards all notifications. Useful in tests and local dev.
type NopNotifier struct{}

func (NopNotifier) InvitationCreated(context.Context, domain.Invitation, string) error { return nil }
func (NopNotifier) InvitationResent(context.Context, domain.Invitation, string) error  { return nil }
func (NopNotifier) UserWelcomed(context.Context, domain.User) error                    { return nil }
