package domain

import "time"

// InvitationStatus is the lifecycle state of an invitation.
//
// Transitions: pending -> accepted, pending -> expired (detected lazily on
// read), pending -> cancelled. Accepted, expired, and cancelled are terminal.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// Terminal reports whether no further transitions may leave this status.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationAccepted || s == InvitationExpired || s == InvitationCancelled
}

// Role is the role granted to the invited user on acceptance.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ValidRole reports whether r is one of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// DefaultExpiryDays is how long a fresh invitation stays redeemable.
const DefaultExpiryDays = 7

// MaxResends caps how often a pending invitation's email may be re-sent.
const MaxResends = 3

// Invitation is a time-boxed, single-use grant allowing an unregistered email
// to create an account with a pre-assigned role and permission set. Only the
// SHA-256 fingerprint of the invite token is kept; the raw token exists solely
// in the invitation email.
type Invitation struct {
	ID        string
	Email     string // normalized to lowercase
	TokenHash string

	Role            Role
	Department      string
	JobTitle        string
	HourlyRate      *float64
	Permissions     []string
	PersonalMessage string

	Status    InvitationStatus
	ExpiresAt time.Time

	CreatedBy    string
	EmailSentAt  time.Time
	ResendCount  int
	LastResentAt *time.Time
	AcceptedAt   *time.Time
	AcceptedBy   string // user id created on acceptance

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the invitation's deadline has passed at now.
// The boundary instant counts as still valid.
func (inv Invitation) Expired(now time.Time) bool {
	return now.After(inv.ExpiresAt)
}

// ExpiryFrom computes an expiration deadline a whole number of days after now.
// Non-positive days fall back to DefaultExpiryDays.
func ExpiryFrom(now time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultExpiryDays
	}
	return now.Add(time.Duration(days) * 24 * time.Hour)
}
