package invitesdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateInvitation creates a pending invitation and dispatches the
// invitation email. Requires a token with the invites:write scope.
func (c *SDKClient) CreateInvitation(
	ctx context.Context,
	req CreateInvitationRequest,
) (*CreateInvitationResponse, error) {
	var resp CreateInvitationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invitations", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListInvitationsOptions narrows and pages ListInvitations. The zero value
// lists the first page of every invitation.
type ListInvitationsOptions struct {
	Status string
	Email  string
	Limit  int
	Offset int
}

// ListInvitations returns a page of invitations, newest first. Requires a
// token with the invites:read scope.
func (c *SDKClient) ListInvitations(
	ctx context.Context,
	opts ListInvitationsOptions,
) (*ListInvitationsResponse, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Email != "" {
		q.Set("email", opts.Email)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/v1/invitations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListInvitationsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetInvitation returns a single invitation by id. Requires a token with
// the invites:read scope.
func (c *SDKClient) GetInvitation(ctx context.Context, id string) (*Invitation, error) {
	var resp Invitation
	path := "/v1/invitations/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateInvitation checks whether an invitation token is redeemable.
// This is a public endpoint (no authentication required).
func (c *SDKClient) ValidateInvitation(
	ctx context.Context,
	token string,
) (*ValidateInvitationResponse, error) {
	var resp ValidateInvitationResponse
	path := "/v1/invitations/validate/" + url.PathEscape(token)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AcceptInvitation redeems an invitation token and creates a user account.
// This is a public endpoint (no authentication required).
func (c *SDKClient) AcceptInvitation(
	ctx context.Context,
	req AcceptInvitationRequest,
) (*AcceptInvitationResponse, error) {
	var resp AcceptInvitationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/accept", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResendInvitation re-sends the invitation email with a fresh token.
// Requires a token with the invites:write scope.
func (c *SDKClient) ResendInvitation(
	ctx context.Context,
	id string,
	req ResendInvitationRequest,
) (*ResendInvitationResponse, error) {
	var resp ResendInvitationResponse
	path := fmt.Sprintf("/v1/invitations/%s/resend", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelInvitation revokes a pending invitation. Requires a token with the
// invites:write scope.
func (c *SDKClient) CancelInvitation(ctx context.Context, id string) (*CancelInvitationResponse, error) {
	var resp CancelInvitationResponse
	path := fmt.Sprintf("/v1/invitations/%s/cancel", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks service liveness.
func (c *SDKClient) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ready checks service readiness, including the database connection.
func (c *SDKClient) Ready(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
