package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/badoux/checkmail"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/internal/invites/store"
	"github.com/shiftbook/shiftbook/pkg/cryptox"
	"github.com/shiftbook/shiftbook/pkg/idx"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

// InvitationService drives the invitation lifecycle: create, validate,
// accept, resend, cancel. It owns every state transition; callers never talk
// to the store directly.
type InvitationService struct {
	Store    store.Store
	Notifier Notifier

	// ExpiryDays is the default invitation lifetime; zero means
	// domain.DefaultExpiryDays.
	ExpiryDays int

	// Now is the clock, overridable in tests. Nil means time.Now (UTC).
	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateParams is the input to CreateInvitation.
type CreateParams struct {
	Email           string
	Role            domain.Role
	Department      string
	JobTitle        string
	HourlyRate      *float64
	Permissions     []string
	PersonalMessage string
	ExpiryDays      int    // 0 means the service default
	CreatedBy       string // inviting user's id
}

// CreateResult carries the new invitation plus whether the email went out.
type CreateResult struct {
	Invitation domain.Invitation
	Notified   bool
}

// CreateInvitation validates the request, issues a token, persists a pending
// invitation, and best-effort sends the invitation email. The raw token is
// only ever handed to the notifier; it is not part of the result.
func (s *InvitationService) CreateInvitation(
	ctx context.Context,
	p CreateParams,
) (CreateResult, error) {
	log := slogx.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return CreateResult{}, ErrInvalidRequest
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		log.Warn("invitation rejected: malformed email")
		return CreateResult{}, ErrInvalidEmail
	}
	if !domain.ValidRole(p.Role) {
		log.Warn("invitation rejected: invalid role", slog.String("role", string(p.Role)))
		return CreateResult{}, ErrInvalidRole
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		return CreateResult{}, ErrInvalidRequest
	}

	// Reject emails that already have an account.
	taken, err := s.Store.Users().EmailTaken(ctx, email)
	if err != nil {
		log.Error("failed to check user email", slog.Any("error", err))
		return CreateResult{}, err
	}
	if taken {
		return CreateResult{}, ErrEmailInUse
	}

	// Early duplicate-pending check for a friendly error; the partial unique
	// index below is what actually closes the race.
	pending, err := s.Store.Invitations().PendingInvitationExists(ctx, email)
	if err != nil {
		log.Error("failed to check pending invitations", slog.Any("error", err))
		return CreateResult{}, err
	}
	if pending {
		return CreateResult{}, ErrPendingExists
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return CreateResult{}, err
	}

	now := s.now()
	days := p.ExpiryDays
	if days <= 0 {
		days = s.ExpiryDays
	}

	inv := domain.Invitation{
		ID:              idx.New().String(),
		Email:           email,
		TokenHash:       cryptox.FingerprintToken(token),
		Role:            p.Role,
		Department:      p.Department,
		JobTitle:        p.JobTitle,
		HourlyRate:      p.HourlyRate,
		Permissions:     p.Permissions,
		PersonalMessage: p.PersonalMessage,
		Status:          domain.InvitationPending,
		ExpiresAt:       domain.ExpiryFrom(now, days),
		CreatedBy:       p.CreatedBy,
		EmailSentAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race on the pending-email unique index.
			return CreateResult{}, ErrPendingExists
		}
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return CreateResult{}, err
	}

	notified := s.notify(ctx, "invitation", func() error {
		return s.Notifier.InvitationCreated(ctx, inv, token)
	})

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(inv.Role)),
		slog.Time("expires_at", inv.ExpiresAt),
		slog.Bool("notified", notified),
	)

	return CreateResult{Invitation: inv, Notified: notified}, nil
}

// ValidateInvitation is the read-only acceptance pre-check behind the
// invitation link. It resolves the token, reconciles lazy expiry, and
// reports the invitation's usability.
func (s *InvitationService) ValidateInvitation(
	ctx context.Context,
	token string,
) (domain.Invitation, error) {
	inv, err := s.resolveToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, err
	}
	return inv, s.usable(inv)
}

// AcceptParams is the account data supplied by the person accepting.
type AcceptParams struct {
	Token        string
	Name         string
	Password     string
	Preferences  domain.PreferencesPatch
	ContactPhone string
}

// AcceptResult carries the created user, the terminal invitation, and
// whether the welcome email went out.
type AcceptResult struct {
	User       domain.User
	Invitation domain.Invitation
	Notified   bool
}

// AcceptInvitation redeems a pending invitation: it creates the user account
// carrying the invitation's grant, then marks the invitation accepted.
//
// Ordering matters: the user is created first. If marking the invitation
// accepted fails afterwards, the inconsistency is logged for an operator and
// surfaced as an error; it is never auto-rolled-back.
func (s *InvitationService) AcceptInvitation(
	ctx context.Context,
	p AcceptParams,
) (AcceptResult, error) {
	log := slogx.FromContext(ctx)

	if p.Name == "" || p.Password == "" {
		return AcceptResult{}, ErrInvalidRequest
	}

	inv, err := s.resolveToken(ctx, p.Token)
	if err != nil {
		return AcceptResult{}, err
	}
	if err := s.usable(inv); err != nil {
		return AcceptResult{}, err
	}

	passwordHash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AcceptResult{}, err
	}

	now := s.now()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        inv.Email,
		Name:         p.Name,
		PasswordHash: passwordHash,
		Role:         inv.Role,
		Department:   inv.Department,
		JobTitle:     inv.JobTitle,
		HourlyRate:   inv.HourlyRate,
		Permissions:  inv.Permissions,
		Preferences:  domain.DefaultPreferences().Merge(p.Preferences),
		ContactPhone: p.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AcceptResult{}, ErrEmailInUse
		}
		log.Error("failed to create user from invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return AcceptResult{}, err
	}

	if err := s.Store.Invitations().MarkInvitationAccepted(ctx, inv.ID, user.ID, now); err != nil {
		// The account exists but the invitation is still pending: an
		// operator has to reconcile. Never roll the user back.
		log.Error("user created but invitation not marked accepted",
			slog.String("invitation_id", inv.ID),
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return AcceptResult{}, err
	}

	inv.Status = domain.InvitationAccepted
	inv.AcceptedAt = &now
	inv.AcceptedBy = user.ID
	inv.UpdatedAt = now

	notified := s.notify(ctx, "welcome", func() error {
		return s.Notifier.UserWelcomed(ctx, user)
	})

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", user.ID),
		slog.Bool("notified", notified),
	)

	return AcceptResult{User: user, Invitation: inv, Notified: notified}, nil
}

// ResendParams is the input to ResendInvitation.
type ResendParams struct {
	ExtendExpiration bool
	PersonalMessage  string
}

// ResendResult carries the refreshed invitation plus whether the email went
// out.
type ResendResult struct {
	Invitation domain.Invitation
	Notified   bool
}

// ResendInvitation re-sends the invitation email for a pending invitation,
// rotating the token and optionally extending the deadline. Capped at
// domain.MaxResends per invitation; the counter increment is a conditional
// write, so concurrent resends cannot overshoot the ceiling.
func (s *InvitationService) ResendInvitation(
	ctx context.Context,
	id string,
	p ResendParams,
) (ResendResult, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.getReconciled(ctx, id)
	if err != nil {
		return ResendResult{}, err
	}
	if err := s.usable(inv); err != nil {
		return ResendResult{}, err
	}

	// Only the hash is stored, so a resend always carries a fresh token.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return ResendResult{}, err
	}

	now := s.now()
	var newExpiry *time.Time
	if p.ExtendExpiration {
		days := s.ExpiryDays
		e := domain.ExpiryFrom(now, days)
		newExpiry = &e
	}

	if p.PersonalMessage != "" {
		if _, err := s.Store.Invitations().UpdateInvitation(ctx, inv.ID, store.InvitationPatch{
			PersonalMessage: &p.PersonalMessage,
		}); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update personal message", slog.Any("error", err))
			return ResendResult{}, err
		}
	}

	updated, err := s.Store.Invitations().RecordResend(
		ctx,
		inv.ID,
		cryptox.FingerprintToken(token),
		now,
		newExpiry,
		domain.MaxResends,
	)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrResendLimit):
			return ResendResult{}, ErrResendLimit
		case errors.Is(err, store.ErrNotFound):
			return ResendResult{}, ErrInvitationNotFound
		}
		log.Error("failed to record resend",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return ResendResult{}, err
	}

	notified := s.notify(ctx, "resend", func() error {
		return s.Notifier.InvitationResent(ctx, updated, token)
	})

	log.Info("invitation resent",
		slog.String("invitation_id", updated.ID),
		slog.Int("resend_count", updated.ResendCount),
		slog.Time("expires_at", updated.ExpiresAt),
		slog.Bool("notified", notified),
	)

	return ResendResult{Invitation: updated, Notified: notified}, nil
}

// CancelInvitation revokes a pending invitation. Cancelled is terminal.
func (s *InvitationService) CancelInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.getReconciled(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}
	if err := s.usable(inv); err != nil {
		return domain.Invitation{}, err
	}

	now := s.now()
	if err := s.Store.Invitations().MarkInvitationCancelled(ctx, inv.ID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		log.Error("failed to cancel invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	inv.Status = domain.InvitationCancelled
	inv.UpdatedAt = now

	log.Info("invitation cancelled", slog.String("invitation_id", inv.ID))
	return inv, nil
}

// GetInvitation returns an invitation by id with expiry reconciled.
func (s *InvitationService) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	return s.getReconciled(ctx, id)
}

// ListInvitations returns a page of invitations plus the total count.
// Expiry is reconciled per returned row so listings never show a
// pending-but-past-deadline invitation.
func (s *InvitationService) ListInvitations(
	ctx context.Context,
	f store.ListFilter,
) ([]domain.Invitation, int, error) {
	items, total, err := s.Store.Invitations().ListInvitations(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	for i := range items {
		items[i], err = s.reconcileExpiry(ctx, items[i])
		if err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

// resolveToken checks the token's shape, fingerprints it, and loads the
// matching invitation with expiry reconciled. A malformed token is
// indistinguishable from an unknown one to the caller.
func (s *InvitationService) resolveToken(ctx context.Context, token string) (domain.Invitation, error) {
	if !cryptox.ValidTokenFormat(token) {
		return domain.Invitation{}, ErrInvitationNotFound
	}

	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch invitation by token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	return s.reconcileExpiry(ctx, inv)
}

func (s *InvitationService) getReconciled(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	return s.reconcileExpiry(ctx, inv)
}

// reconcileExpiry makes lazy expiration explicit: a pending invitation past
// its deadline is flipped to expired and the new state persisted before any
// caller branches on status. The persisted write is conditional on pending,
// so concurrent readers detecting the same expiry are idempotent.
func (s *InvitationService) reconcileExpiry(
	ctx context.Context,
	inv domain.Invitation,
) (domain.Invitation, error) {
	if inv.Status != domain.InvitationPending || !inv.Expired(s.now()) {
		return inv, nil
	}

	if err := s.Store.Invitations().MarkInvitationExpired(ctx, inv.ID, s.now()); err != nil {
		slogx.FromContext(ctx).Error("failed to persist expired status",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	inv.Status = domain.InvitationExpired
	return inv, nil
}

// usable maps a reconciled invitation's status to its typed rejection.
// Pending is usable; every terminal state has its own error.
func (s *InvitationService) usable(inv domain.Invitation) error {
	switch inv.Status {
	case domain.InvitationPending:
		return nil
	case domain.InvitationAccepted:
		return ErrInvitationAccepted
	case domain.InvitationExpired:
		return ErrInvitationExpired
	case domain.InvitationCancelled:
		return ErrInvitationCancelled
	}
	return ErrInvitationNotFound
}

// notify runs a best-effort notification, logging failures. The return value
// feeds the partial-success flag in responses.
func (s *InvitationService) notify(ctx context.Context, kind string, fn func() error) bool {
	if s.Notifier == nil {
		return false
	}
	if err := fn(); err != nil {
		slogx.FromContext(ctx).Warn("notification dispatch failed",
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		return false
	}
	return true
}
