package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationCreateHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Create Invitation
//	@Description	Create a pending invitation for an email address and dispatch the invitation email.
//	@Description	The raw invitation token only ever travels inside the email; it is not part of the response.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.CreateInvitationRequest	true	"Invitation details"
//	@Success		201		{object}	invitesdk.CreateInvitationResponse	"invitation, email_sent"
//	@Failure		400		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		401		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		409		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		500		{object}	invitesdk.APIError					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invitesdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
		return
	}
	if req.Email == "" {
		invitesdk.ErrInvalidRequest.WithDescription("email is required").WriteError(w)
		return
	}
	if req.Role == "" {
		invitesdk.ErrInvalidRequest.WithDescription("role is required").WriteError(w)
		return
	}

	res, err := h.InvitationService.CreateInvitation(ctx, service.CreateParams{
		Email:           req.Email,
		Role:            domain.Role(req.Role),
		Department:      req.Department,
		JobTitle:        req.JobTitle,
		HourlyRate:      req.HourlyRate,
		Permissions:     req.Permissions,
		PersonalMessage: req.PersonalMessage,
		ExpiryDays:      req.ExpirationDays,
		CreatedBy:       httpx.UserIDFromCtx(ctx),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			invitesdk.ErrInvalidRequest.WithDescription("email address is not valid").WriteError(w)
		case errors.Is(err, service.ErrInvalidRole):
			invitesdk.ErrInvalidRequest.WithDescription("role must be admin, manager, or employee").WriteError(w)
		case errors.Is(err, service.ErrInvalidRequest):
			invitesdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrEmailInUse):
			invitesdk.ErrConflict.WithDescription("email already belongs to a user account").WriteError(w)
		case errors.Is(err, service.ErrPendingExists):
			invitesdk.ErrConflict.WithDescription("a pending invitation already exists for this email").WriteError(w)
		default:
			log.Error("failed to create invitation", "err", err)
			invitesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitesdk.CreateInvitationResponse{
		Invitation: toSDKInvitation(res.Invitation),
		EmailSent:  res.Notified,
	})
}
