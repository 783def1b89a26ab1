package service

import "errors"

// Typed outcomes of invitation operations. Handlers branch on these with
// errors.Is; anything else is an internal failure.
var (
	// ErrInvalidRequest covers malformed input caught before any I/O.
	ErrInvalidRequest = errors.New("invalid invitation request")

	// ErrInvalidEmail reports an email that fails format validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidRole reports a role outside the closed role set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmailInUse reports an email that already belongs to a user account.
	ErrEmailInUse = errors.New("email already registered")

	// ErrPendingExists reports an email that already has a pending invitation.
	ErrPendingExists = errors.New("a pending invitation already exists for this email")

	// ErrInvitationNotFound reports an id or token with no matching record.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvitationAccepted reports an invitation that was already redeemed.
	ErrInvitationAccepted = errors.New("invitation has already been accepted")

	// ErrInvitationExpired reports an invitation past its deadline. The
	// record exists but is unusable, distinct from not-found.
	ErrInvitationExpired = errors.New("invitation has expired")

	// ErrInvitationCancelled reports an administratively revoked invitation.
	ErrInvitationCancelled = errors.New("invitation has been cancelled")

	// ErrResendLimit reports that the resend ceiling has been reached.
	ErrResendLimit = errors.New("invitation resend limit reached")
)
