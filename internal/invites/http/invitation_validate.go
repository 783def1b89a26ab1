package http

import (
	"errors"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationValidateHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invitation Token
//	@Description	Check whether an invitation token is redeemable. This is the read-only
//	@Description	pre-check behind the emailed invitation link; it is public and does not
//	@Description	consume the invitation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string								true	"Invitation token from the email link"
//	@Success		200		{object}	invitesdk.ValidateInvitationResponse	"invitation, is_expired"
//	@Failure		404		{object}	invitesdk.APIError					"unknown or malformed token"
//	@Failure		409		{object}	invitesdk.APIError					"already accepted"
//	@Failure		410		{object}	invitesdk.APIError					"expired or cancelled"
//	@Failure		500		{object}	invitesdk.APIError					"error, error_description"
//	@Router			/v1/invitations/validate/{token} [get].
func (h *InvitationValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InvitationService.ValidateInvitation(ctx, r.PathValue("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			invitesdk.ErrNotFound.WithDescription("invitation token is not valid").WriteError(w)
		case errors.Is(err, service.ErrInvitationAccepted):
			invitesdk.ErrConflict.WithDescription("invitation has already been accepted").WriteError(w)
		case errors.Is(err, service.ErrInvitationExpired):
			invitesdk.ErrGone.WithDescription("invitation has expired").WriteError(w)
		case errors.Is(err, service.ErrInvitationCancelled):
			invitesdk.ErrGone.WithDescription("invitation has been cancelled").WriteError(w)
		default:
			log.Error("failed to validate invitation", "err", err)
			invitesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ValidateInvitationResponse{
		Invitation: toSDKInvitation(inv),
		IsExpired:  false,
	})
}
