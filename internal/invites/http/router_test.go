package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	invhttp "github.com/shiftbook/shiftbook/internal/invites/http"
	"github.com/shiftbook/shiftbook/internal/invites/service"
	"github.com/shiftbook/shiftbook/internal/invites/store/drivers/sqlite"
	"github.com/shiftbook/shiftbook/pkg/cryptox"
	"github.com/shiftbook/shiftbook/pkg/invitesdk"
	"github.com/shiftbook/shiftbook/pkg/jwtx"
	"github.com/shiftbook/shiftbook/pkg/slogx"
)

var testSecret = []byte("integration-test-secret")

const testIssuer = "https://app.example.com"

// tokenCapture records the raw tokens handed to the notifier, which is the
// only way a test can get hold of an invitation link.
type tokenCapture struct {
	mu     sync.Mutex
	tokens map[string]string // invitation id -> latest raw token
}

func (c *tokenCapture) InvitationCreated(_ context.Context, inv domain.Invitation, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[inv.ID] = token
	return nil
}

func (c *tokenCapture) InvitationResent(_ context.Context, inv domain.Invitation, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[inv.ID] = token
	return nil
}

func (c *tokenCapture) UserWelcomed(context.Context, domain.User) error { return nil }

func (c *tokenCapture) token(t *testing.T, invitationID string) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	tok, ok := c.tokens[invitationID]
	require.True(t, ok, "no token captured for invitation %s", invitationID)
	return tok
}

type testEnv struct {
	client  *invitesdk.SDKClient
	notifs  *tokenCapture
	clock   *fakeClock
	service *service.InvitationService
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func setupServer(t *testing.T, scopes ...string) *testEnv {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	notifs := &tokenCapture{tokens: map[string]string{}}
	clock := &fakeClock{t: time.Now().UTC()}

	svc := &service.InvitationService{
		Store:      st,
		Notifier:   notifs,
		ExpiryDays: domain.DefaultExpiryDays,
		Now:        clock.Now,
	}

	verifier := &jwtx.HS256Verifier{Secret: testSecret, Issuer: testIssuer}
	router := invhttp.NewRouter(verifier, "test", st, slogx.New(slogx.Config{Level: "error"}))
	router.InvitationService = svc
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client := invitesdk.NewSDKClient(srv.URL)
	if len(scopes) > 0 {
		client.Token = mintToken(t, scopes)
	}

	return &testEnv{client: client, notifs: notifs, clock: clock, service: svc}
}

func mintToken(t *testing.T, scopes []string) string {
	t.Helper()

	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-user-1",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Scopes: scopes,
		Email:  "admin@example.com",
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return raw
}

func TestInvitationLifecycle(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	// Create
	created, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email:      "newhire@example.com",
		Role:       "employee",
		Department: "kitchen",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", created.Invitation.Status)
	require.Equal(t, "admin-user-1", created.Invitation.CreatedBy)
	require.True(t, created.EmailSent)

	token := env.notifs.token(t, created.Invitation.ID)

	// Validate the emailed link
	check, err := env.client.ValidateInvitation(ctx, token)
	require.NoError(t, err)
	require.False(t, check.IsExpired)
	require.Equal(t, created.Invitation.ID, check.Invitation.ID)

	// Accept
	accepted, err := env.client.AcceptInvitation(ctx, invitesdk.AcceptInvitationRequest{
		Token: token,
		UserData: invitesdk.AcceptUserData{
			Name:     "New Hire",
			Password: "correct horse battery staple",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, accepted.User.ID)
	require.Equal(t, "newhire@example.com", accepted.User.Email)
	require.Equal(t, "employee", accepted.User.Role)
	require.Equal(t, "accepted", accepted.Invitation.Status)
	require.Equal(t, accepted.User.ID, accepted.Invitation.AcceptedBy)

	// Second accept with the same token conflicts
	_, err = env.client.AcceptInvitation(ctx, invitesdk.AcceptInvitationRequest{
		Token: token,
		UserData: invitesdk.AcceptUserData{
			Name:     "Someone Else",
			Password: "correct horse battery staple",
		},
	})
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, invitesdk.ErrorCodeConflict, apiErr.Code)
}

func TestCreateConflicts(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	_, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "dup@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)

	_, err = env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "dup@example.com",
		Role:  "manager",
	})
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	_, err = env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "not-an-email",
		Role:  "employee",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCancelThenValidateGone(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	created, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "revoked@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)
	token := env.notifs.token(t, created.Invitation.ID)

	cancelled, err := env.client.CancelInvitation(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Invitation.Status)

	_, err = env.client.ValidateInvitation(ctx, token)
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusGone, apiErr.StatusCode)
}

func TestResendRotation(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	created, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "again@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)
	original := env.notifs.token(t, created.Invitation.ID)

	resent, err := env.client.ResendInvitation(ctx, created.Invitation.ID, invitesdk.ResendInvitationRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, resent.Invitation.ResendCount)
	require.True(t, resent.EmailSent)

	rotated := env.notifs.token(t, created.Invitation.ID)
	require.NotEqual(t, original, rotated)

	// The old link is dead, the new one works.
	var apiErr *invitesdk.APIError
	_, err = env.client.ValidateInvitation(ctx, original)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	check, err := env.client.ValidateInvitation(ctx, rotated)
	require.NoError(t, err)
	require.Equal(t, created.Invitation.ID, check.Invitation.ID)
}

func TestResendCeiling(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	created, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "persistent@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)

	for i := 1; i <= domain.MaxResends; i++ {
		resent, err := env.client.ResendInvitation(ctx, created.Invitation.ID, invitesdk.ResendInvitationRequest{})
		require.NoError(t, err)
		require.Equal(t, i, resent.Invitation.ResendCount)
	}

	_, err = env.client.ResendInvitation(ctx, created.Invitation.ID, invitesdk.ResendInvitationRequest{})
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, invitesdk.ErrorCodeRateLimited, apiErr.Code)
}

func TestExpiredInvitationIsGone(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	created, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email:          "late@example.com",
		Role:           "employee",
		ExpirationDays: 1,
	})
	require.NoError(t, err)
	token := env.notifs.token(t, created.Invitation.ID)

	env.clock.Advance(25 * time.Hour)

	_, err = env.client.ValidateInvitation(ctx, token)
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusGone, apiErr.StatusCode)

	// The listing reflects the persisted expiry.
	list, err := env.client.ListInvitations(ctx, invitesdk.ListInvitationsOptions{Status: "expired"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, created.Invitation.ID, list.Invitations[0].ID)
}

func TestListPagination(t *testing.T) {
	env := setupServer(t, "invites:read", "invites:write")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
			Email: fmt.Sprintf("worker%d@example.com", i),
			Role:  "employee",
		})
		require.NoError(t, err)
		env.clock.Advance(time.Minute)
	}

	list, err := env.client.ListInvitations(ctx, invitesdk.ListInvitationsOptions{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	require.Len(t, list.Invitations, 2)
	require.True(t, list.HasMore)
	require.Equal(t, "worker2@example.com", list.Invitations[0].Email)

	list, err = env.client.ListInvitations(ctx, invitesdk.ListInvitationsOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list.Invitations, 1)
	require.False(t, list.HasMore)
}

func TestAuthRequired(t *testing.T) {
	env := setupServer(t) // no token
	ctx := context.Background()

	_, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "worker@example.com",
		Role:  "employee",
	})
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestScopeEnforced(t *testing.T) {
	env := setupServer(t, "invites:read") // read-only token
	ctx := context.Background()

	_, err := env.client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
		Email: "worker@example.com",
		Role:  "employee",
	})
	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	// The read scope still allows listing.
	_, err = env.client.ListInvitations(ctx, invitesdk.ListInvitationsOptions{})
	require.NoError(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	live, err := env.client.Health(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := env.client.Ready(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
