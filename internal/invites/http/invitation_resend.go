package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationResendHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Resend Invitation
//	@Description	Re-send the invitation email for a pending invitation with a freshly rotated
//	@Description	token; earlier links stop working. Optionally extends the deadline. Capped at
//	@Description	3 resends per invitation.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Invitation id"
//	@Param			request	body		invitesdk.ResendInvitationRequest	false	"Resend options"
//	@Success		200		{object}	invitesdk.ResendInvitationResponse	"invitation, email_sent"
//	@Failure		400		{object}	invitesdk.APIError					"not pending, or resend limit reached"
//	@Failure		401		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		404		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		500		{object}	invitesdk.APIError					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationResendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// The body is optional; an empty body means default options.
	var req invitesdk.ResendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		invitesdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
		return
	}

	res, err := h.InvitationService.ResendInvitation(ctx, r.PathValue("id"), service.ResendParams{
		ExtendExpiration: req.ExtendExpiration,
		PersonalMessage:  req.PersonalMessage,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			invitesdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrResendLimit):
			invitesdk.ErrRateLimited.WriteError(w)
		case errors.Is(err, service.ErrInvitationAccepted),
			errors.Is(err, service.ErrInvitationExpired),
			errors.Is(err, service.ErrInvitationCancelled):
			invitesdk.ErrInvalidRequest.WithDescription("invitation is not pending").WriteError(w)
		default:
			log.Error("failed to resend invitation", "err", err)
			invitesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ResendInvitationResponse{
		Invitation: toSDKInvitation(res.Invitation),
		EmailSent:  res.Notified,
	})
}
