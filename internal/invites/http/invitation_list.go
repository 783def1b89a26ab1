package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/internal/invites/store"
	"github.com/shiftbook/shiftbook/pkg/httpx"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

type InvitationListHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		List Invitations
//	@Description	List invitations newest first, optionally filtered by status or email.
//	@Description	Pending invitations past their deadline are reported as expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status (pending, accepted, expired, cancelled)"
//	@Param			email	query		string	false	"Filter by exact email"
//	@Param			limit	query		int		false	"Page size, capped at 100 (default 20)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	invitesdk.ListInvitationsResponse	"invitations, total, has_more"
//	@Failure		400		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		401		{object}	invitesdk.APIError					"error, error_description"
//	@Failure		500		{object}	invitesdk.APIError					"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	filter := store.ListFilter{
		Email: r.URL.Query().Get("email"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.InvitationStatus(s)
		switch status {
		case domain.InvitationPending, domain.InvitationAccepted,
			domain.InvitationExpired, domain.InvitationCancelled:
			filter.Status = &status
		default:
			invitesdk.ErrInvalidRequest.WithDescription("unknown status filter").WriteError(w)
			return
		}
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		invitesdk.ErrInvalidRequest.WithDescription("limit must be an integer").WriteError(w)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		invitesdk.ErrInvalidRequest.WithDescription("offset must be an integer").WriteError(w)
		return
	}

	items, total, err := h.InvitationService.ListInvitations(ctx, filter)
	if err != nil {
		log.Error("failed to list invitations", "err", err)
		invitesdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]invitesdk.Invitation, 0, len(items))
	for _, inv := range items {
		out = append(out, toSDKInvitation(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ListInvitationsResponse{
		Invitations: out,
		Total:       total,
		HasMore:     filter.Offset+len(items) < total,
	})
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

type InvitationGetHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Get Invitation
//	@Description	Fetch a single invitation by id, with lazy expiry reconciled.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string					true	"Invitation id"
//	@Success		200	{object}	invitesdk.Invitation	"invitation summary"
//	@Failure		401	{object}	invitesdk.APIError		"error, error_description"
//	@Failure		404	{object}	invitesdk.APIError		"error, error_description"
//	@Failure		500	{object}	invitesdk.APIError		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [get].
func (h *InvitationGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InvitationService.GetInvitation(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			invitesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to fetch invitation", "err", err)
		invitesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKInvitation(inv))
}
