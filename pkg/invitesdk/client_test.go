package invitesdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateInvitation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/invitations", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateInvitationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "worker@example.com", req.Email)
		require.Equal(t, "employee", req.Role)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateInvitationResponse{
			Invitation: Invitation{ID: "inv-1", Email: req.Email, Status: "pending"},
			EmailSent:  true,
		})
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	client.Token = "admin-token"

	resp, err := client.CreateInvitation(context.Background(), CreateInvitationRequest{
		Email: "worker@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)
	require.Equal(t, "inv-1", resp.Invitation.ID)
	require.True(t, resp.EmailSent)
}

func TestValidateInvitationGone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/invitations/validate/some-token", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "validate is a public endpoint")

		ErrGone.WithDescription("invitation has expired").WriteError(w)
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)

	_, err := client.ValidateInvitation(context.Background(), "some-token")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusGone, apiErr.StatusCode)
	require.Equal(t, ErrorCodeGone, apiErr.Code)
	require.Equal(t, "invitation has expired", apiErr.Description)
}

func TestListInvitationsQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "pending", q.Get("status"))
		require.Equal(t, "25", q.Get("limit"))
		require.Equal(t, "50", q.Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListInvitationsResponse{
			Invitations: []Invitation{},
			Total:       120,
			HasMore:     true,
		})
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	client.Token = "admin-token"

	resp, err := client.ListInvitations(context.Background(), ListInvitationsOptions{
		Status: "pending",
		Limit:  25,
		Offset: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 120, resp.Total)
	require.True(t, resp.HasMore)
}

func TestMalformedErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)

	_, err := client.GetInvitation(context.Background(), "inv-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}
