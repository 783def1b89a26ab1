package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationAcceptHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token: creates the user account carrying the invitation's
//	@Description	role and permissions, marks the invitation accepted, and sends a welcome email.
//	@Description	This is a public endpoint; the token is the credential.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.AcceptInvitationRequest	true	"Token and account details"
//	@Success		200		{object}	invitesdk.AcceptInvitationResponse	"user, invitation, welcome_sent"
//	@Failure		400		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		404		{object}	invitesdk.APIError					"unknown or malformed token"
//	@Failure		409		{object}	invitesdk.APIError					"already accepted or email registered"
//	@Failure		410		{object}	invitesdk.APIError					"expired or cancelled"
//	@Failure		500		{object}	invitesdk.APIError					"error, error_description"
//	@Router			/v1/invitations/accept [post].
func (h *InvitationAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invitesdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
		return
	}
	if req.Token == "" {
		invitesdk.ErrInvalidRequest.WithDescription("token is required").WriteError(w)
		return
	}
	if req.UserData.Name == "" {
		invitesdk.ErrInvalidRequest.WithDescription("user_data.name is required").WriteError(w)
		return
	}
	if req.UserData.Password == "" {
		invitesdk.ErrInvalidRequest.WithDescription("user_data.password is required").WriteError(w)
		return
	}

	res, err := h.InvitationService.AcceptInvitation(ctx, service.AcceptParams{
		Token:        req.Token,
		Name:         req.UserData.Name,
		Password:     req.UserData.Password,
		Preferences:  toDomainPreferencesPatch(req.UserData.Preferences),
		ContactPhone: req.UserData.ContactPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			invitesdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrInvitationNotFound):
			invitesdk.ErrNotFound.WithDescription("invitation token is not valid").WriteError(w)
		case errors.Is(err, service.ErrInvitationAccepted):
			invitesdk.ErrConflict.WithDescription("invitation has already been accepted").WriteError(w)
		case errors.Is(err, service.ErrEmailInUse):
			invitesdk.ErrConflict.WithDescription("email already belongs to a user account").WriteError(w)
		case errors.Is(err, service.ErrInvitationExpired):
			invitesdk.ErrGone.WithDescription("invitation has expired").WriteError(w)
		case errors.Is(err, service.ErrInvitationCancelled):
			invitesdk.ErrGone.WithDescription("invitation has been cancelled").WriteError(w)
		default:
			log.Error("failed to accept invitation", "err", err)
			invitesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.AcceptInvitationResponse{
		User:        toSDKUser(res.User),
		Invitation:  toSDKInvitation(res.Invitation),
		WelcomeSent: res.Notified,
	})
}
