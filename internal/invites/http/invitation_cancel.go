package http

import (
	"errors"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationCancelHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Cancel Invitation
//	@Description	Revoke a pending invitation. Cancelled is terminal: the emailed link stops
//	@Description	working and the email address becomes invitable again.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string								true	"Invitation id"
//	@Success		200	{object}	invitesdk.CancelInvitationResponse	"invitation"
//	@Failure		400	{object}	invitesdk.APIError					"invitation is not pending"
//	@Failure		401	{object}	invitesdk.APIError					"error, error_description"
//	@Failure		404	{object}	invitesdk.APIError					"error, error_description"
//	@Failure		500	{object}	invitesdk.APIError					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/cancel [post].
func (h *InvitationCancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InvitationService.CancelInvitation(ctx, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			invitesdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvitationAccepted),
			errors.Is(err, service.ErrInvitationExpired),
			errors.Is(err, service.ErrInvitationCancelled):
			invitesdk.ErrInvalidRequest.WithDescription("invitation is not pending").WriteError(w)
		default:
			log.Error("failed to cancel invitation", "err", err)
			invitesdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("invitation cancelled",
		"invitation_id", inv.ID,
		"cancelled_by", httpx.UserEmailFromCtx(ctx),
	)

	httpx.WriteJSON(w, http.StatusOK, invitesdk.CancelInvitationResponse{
		Invitation: toSDKInvitation(inv),
	})
}
