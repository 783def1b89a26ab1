package invitesdk

import "time"

// Invitation is the invitation summary served by the API. The token and its
// fingerprint never appear here.
type Invitation struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Department      string     `json:"department,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	HourlyRate      *float64   `json:"hourly_rate,omitempty"`
	Permissions     []string   `json:"permissions,omitempty"`
	PersonalMessage string     `json:"personal_message,omitempty"`
	Status          string     `json:"status"`
	ExpiresAt       time.Time  `json:"expires_at"`
	CreatedBy       string     `json:"created_by"`
	EmailSentAt     time.Time  `json:"email_sent_at"`
	ResendCount     int        `json:"resend_count"`
	LastResentAt    *time.Time `json:"last_resent_at,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy      string     `json:"accepted_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// User is the account profile returned after accepting an invitation.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	Department   string      `json:"department,omitempty"`
	JobTitle     string      `json:"job_title,omitempty"`
	HourlyRate   *float64    `json:"hourly_rate,omitempty"`
	Permissions  []string    `json:"permissions,omitempty"`
	Preferences  Preferences `json:"preferences"`
	ContactPhone string      `json:"contact_phone,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Preferences are the per-user display settings on a profile.
type Preferences struct {
	Timezone       string `json:"timezone"`
	Language       string `json:"language"`
	WeekStart      string `json:"week_start"`
	TimeFormat     string `json:"time_format"`
	EmailReminders bool   `json:"email_reminders"`
}

// PreferencesPatch carries the optional preference overrides supplied when
// accepting. Omitted fields keep their defaults.
type PreferencesPatch struct {
	Timezone       *string `json:"timezone,omitempty"`
	Language       *string `json:"language,omitempty"`
	WeekStart      *string `json:"week_start,omitempty"`
	TimeFormat     *string `json:"time_format,omitempty"`
	EmailReminders *bool   `json:"email_reminders,omitempty"`
}

// CreateInvitationRequest is the body of POST /v1/invitations.
type CreateInvitationRequest struct {
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Department      string   `json:"department,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	Permissions     []string `json:"permissions,omitempty"`
	PersonalMessage string   `json:"personal_message,omitempty"`

	// ExpirationDays overrides the default invitation lifetime. Zero or
	// omitted uses the service default.
	ExpirationDays int `json:"expiration_days,omitempty"`
}

// CreateInvitationResponse is the 201 body of POST /v1/invitations.
// EmailSent is the partial-success flag: false means the invitation exists
// but the email could not be dispatched.
type CreateInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	EmailSent  bool       `json:"email_sent"`
}

// ValidateInvitationResponse is the 200 body of
// GET /v1/invitations/validate/{token}.
type ValidateInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	IsExpired  bool       `json:"is_expired"`
}

// AcceptUserData carries the account details supplied by the person
// accepting an invitation.
type AcceptUserData struct {
	Name         string           `json:"name"`
	Password     string           `json:"password"`
	Preferences  PreferencesPatch `json:"preferences,omitempty"`
	ContactPhone string           `json:"contact_phone,omitempty"`
}

// AcceptInvitationRequest is the body of POST /v1/invitations/accept.
type AcceptInvitationRequest struct {
	Token    string         `json:"token"`
	UserData AcceptUserData `json:"user_data"`
}

// AcceptInvitationResponse is the 200 body of POST /v1/invitations/accept.
type AcceptInvitationResponse struct {
	User        User       `json:"user"`
	Invitation  Invitation `json:"invitation"`
	WelcomeSent bool       `json:"welcome_sent"`
}

// ResendInvitationRequest is the body of POST /v1/invitations/{id}/resend.
type ResendInvitationRequest struct {
	// ExtendExpiration moves the deadline forward from now by the service's
	// default lifetime.
	ExtendExpiration bool `json:"extend_expiration,omitempty"`

	// PersonalMessage replaces the invitation's personal message before the
	// reminder goes out.
	PersonalMessage string `json:"personal_message,omitempty"`
}

// ResendInvitationResponse is the 200 body of POST /v1/invitations/{id}/resend.
type ResendInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	EmailSent  bool       `json:"email_sent"`
}

// CancelInvitationResponse is the 200 body of POST /v1/invitations/{id}/cancel.
type CancelInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
}

// ListInvitationsResponse is the 200 body of GET /v1/invitations.
type ListInvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
	Total       int          `json:"total"`
	HasMore     bool         `json:"has_more"`
}

// HealthChecks reports the state of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
