package store

import (
	"context"
	"errors"
	"time"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrResendLimit is returned by RecordResend when the invitation has hit
	// its resend ceiling.
	ErrResendLimit = errors.New("store: resend limit reached")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Invitations() Invitations
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rollback when fn errors,
	// commit otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// InvitationPatch is a partial invitation update. Nil fields are left
// untouched; updated_at is always refreshed.
type InvitationPatch struct {
	Status          *domain.InvitationStatus
	ExpiresAt       *time.Time
	PersonalMessage *string
	EmailSentAt     *time.Time
}

// ListFilter narrows and pages ListInvitations. A zero filter lists the
// first page of every invitation, newest first.
type ListFilter struct {
	Status *domain.InvitationStatus
	Email  string // exact match, normalized lowercase
	Limit  int    // capped at MaxListLimit, defaulted when <= 0
	Offset int
}

// MaxListLimit bounds a single list page.
const MaxListLimit = 100

// DefaultListLimit is used when the caller doesn't ask for a page size.
const DefaultListLimit = 20

type Invitations interface {
	// CreateInvitation inserts a new pending invitation. Returns
	// ErrAlreadyExists on an id collision or when a pending invitation for
	// the same email already exists (enforced by a partial unique index, so
	// concurrent creates cannot both win).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash is the hot verification path; the token_hash
	// column carries a unique index so this is a point lookup.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// PendingInvitationExists reports whether email already has a pending
	// invitation.
	PendingInvitationExists(ctx context.Context, email string) (bool, error)

	// UpdateInvitation merges the provided fields and bumps updated_at.
	// Returns ErrNotFound when the row vanished between read and write.
	UpdateInvitation(ctx context.Context, id string, patch InvitationPatch) (domain.Invitation, error)

	// MarkInvitationExpired flips a pending invitation to expired. The write
	// is conditional on status=pending, so concurrent lazy-expiry detections
	// are idempotent; expiring an already-expired row is not an error.
	MarkInvitationExpired(ctx context.Context, id string, at time.Time) error

	// MarkInvitationAccepted flips a pending invitation to accepted,
	// recording when and by which user. Conditional on status=pending;
	// returns ErrNotFound when the invitation is missing or not pending.
	MarkInvitationAccepted(ctx context.Context, id, userID string, at time.Time) error

	// MarkInvitationCancelled flips a pending invitation to cancelled.
	// Conditional on status=pending; returns ErrNotFound when the invitation
	// is missing or not pending.
	MarkInvitationCancelled(ctx context.Context, id string, at time.Time) error

	// RecordResend atomically increments resend_count (never past limit),
	// rotates token_hash, stamps last_resent_at/email_sent_at, and optionally
	// moves expires_at. Returns the updated invitation, ErrResendLimit at the
	// ceiling, or ErrNotFound when the invitation is missing or not pending.
	RecordResend(ctx context.Context, id, tokenHash string, at time.Time, newExpiresAt *time.Time, limit int) (domain.Invitation, error)

	// ListInvitations returns a page of invitations plus the total count for
	// the filter, newest first.
	ListInvitations(ctx context.Context, f ListFilter) ([]domain.Invitation, int, error)
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// EmailTaken reports whether a user with this email exists.
	EmailTaken(ctx context.Context, email string) (bool, error)
}
