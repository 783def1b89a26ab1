package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/internal/invites/store"
	"github.com/shiftbook/shiftbook/internal/invites/store/drivers/sqlite"
	"github.com/shiftbook/shiftbook/pkg/cryptox"
)

// fakeClock is a movable clock for exercising expiry without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
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

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// recordingNotifier captures dispatched tokens and can be told to fail.
type recordingNotifier struct {
	mu       sync.Mutex
	created  []string // raw tokens from InvitationCreated
	resent   []string // raw tokens from InvitationResent
	welcomed []string // user emails from UserWelcomed
	fail     bool
}

func (n *recordingNotifier) InvitationCreated(_ context.Context, _ domain.Invitation, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.created = append(n.created, token)
	return nil
}

func (n *recordingNotifier) InvitationResent(_ context.Context, _ domain.Invitation, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.resent = append(n.resent, token)
	return nil
}

func (n *recordingNotifier) UserWelcomed(_ context.Context, user domain.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.welcomed = append(n.welcomed, user.Email)
	return nil
}

func (n *recordingNotifier) lastCreated(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.created)
	return n.created[len(n.created)-1]
}

func (n *recordingNotifier) lastResent(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.resent)
	return n.resent[len(n.resent)-1]
}

func setupService(t *testing.T) (*InvitationService, *recordingNotifier, *fakeClock) {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	clock := newFakeClock()
	notifier := &recordingNotifier{}

	svc := &InvitationService{
		Store:      st,
		Notifier:   notifier,
		ExpiryDays: domain.DefaultExpiryDays,
		Now:        clock.Now,
	}
	return svc, notifier, clock
}

func create(t *testing.T, svc *InvitationService, email string) CreateResult {
	t.Helper()
	res, err := svc.CreateInvitation(context.Background(), CreateParams{
		Email:     email,
		Role:      domain.RoleEmployee,
		CreatedBy: "admin-1",
	})
	require.NoError(t, err)
	return res
}

func TestCreateInvitation(t *testing.T) {
	t.Run("happy path issues token and defaults expiry", func(t *testing.T) {
		svc, notifier, clock := setupService(t)

		res, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:           "New.Hire@Example.COM",
			Role:            domain.RoleManager,
			Department:      "front of house",
			PersonalMessage: "welcome aboard",
			CreatedBy:       "admin-1",
		})
		require.NoError(t, err)

		inv := res.Invitation
		require.Equal(t, "new.hire@example.com", inv.Email, "email is normalized lowercase")
		require.Equal(t, domain.InvitationPending, inv.Status)
		require.Equal(t, clock.Now().AddDate(0, 0, domain.DefaultExpiryDays), inv.ExpiresAt)
		require.Zero(t, inv.ResendCount)
		require.True(t, res.Notified)

		// The raw token only travels through the notifier, and its
		// fingerprint is what got stored.
		token := notifier.lastCreated(t)
		require.True(t, cryptox.ValidTokenFormat(token))
		require.Equal(t, cryptox.FingerprintToken(token), inv.TokenHash)

		got, err := svc.GetInvitation(context.Background(), inv.ID)
		require.NoError(t, err)
		require.Equal(t, inv.TokenHash, got.TokenHash)
	})

	t.Run("custom expiry window", func(t *testing.T) {
		svc, _, clock := setupService(t)

		res, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:      "short@example.com",
			Role:       domain.RoleEmployee,
			ExpiryDays: 1,
			CreatedBy:  "admin-1",
		})
		require.NoError(t, err)
		require.Equal(t, clock.Now().AddDate(0, 0, 1), res.Invitation.ExpiresAt)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:     "not-an-email",
			Role:      domain.RoleEmployee,
			CreatedBy: "admin-1",
		})
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:     "someone@example.com",
			Role:      "superuser",
			CreatedBy: "admin-1",
		})
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects negative hourly rate", func(t *testing.T) {
		svc, _, _ := setupService(t)

		rate := -5.0
		_, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:      "someone@example.com",
			Role:       domain.RoleEmployee,
			HourlyRate: &rate,
			CreatedBy:  "admin-1",
		})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("duplicate pending email conflicts", func(t *testing.T) {
		svc, _, _ := setupService(t)
		create(t, svc, "dup@example.com")

		_, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:     "dup@example.com",
			Role:      domain.RoleEmployee,
			CreatedBy: "admin-1",
		})
		require.ErrorIs(t, err, ErrPendingExists)
	})

	t.Run("registered email conflicts", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		create(t, svc, "hired@example.com")

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token:    notifier.lastCreated(t),
			Name:     "Hired Person",
			Password: "correct horse battery staple",
		})
		require.NoError(t, err)

		_, err = svc.CreateInvitation(context.Background(), CreateParams{
			Email:     "hired@example.com",
			Role:      domain.RoleEmployee,
			CreatedBy: "admin-1",
		})
		require.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("notifier failure is partial success", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		notifier.fail = true

		res, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:     "unreachable@example.com",
			Role:      domain.RoleEmployee,
			CreatedBy: "admin-1",
		})
		require.NoError(t, err, "notification failure never fails the operation")
		require.False(t, res.Notified)
		require.Equal(t, domain.InvitationPending, res.Invitation.Status)
	})
}

func TestValidateInvitation(t *testing.T) {
	t.Run("pending and in date", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "valid@example.com")

		inv, err := svc.ValidateInvitation(context.Background(), notifier.lastCreated(t))
		require.NoError(t, err)
		require.Equal(t, created.Invitation.ID, inv.ID)
		require.Equal(t, domain.InvitationPending, inv.Status)
	})

	t.Run("malformed token is not found", func(t *testing.T) {
		svc, _, _ := setupService(t)
		create(t, svc, "valid@example.com")

		_, err := svc.ValidateInvitation(context.Background(), "too-short")
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		svc, _, _ := setupService(t)

		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		_, err = svc.ValidateInvitation(context.Background(), token)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("expired lazily and persisted", func(t *testing.T) {
		svc, notifier, clock := setupService(t)
		created := create(t, svc, "late@example.com")
		token := notifier.lastCreated(t)

		clock.Advance(time.Duration(domain.DefaultExpiryDays)*24*time.Hour + time.Second)

		_, err := svc.ValidateInvitation(context.Background(), token)
		require.ErrorIs(t, err, ErrInvitationExpired)

		// The detection persisted the terminal state.
		got, err := svc.Store.Invitations().GetInvitationByID(context.Background(), created.Invitation.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationExpired, got.Status)

		// A second read observes the same outcome; the conditional write
		// is a no-op.
		_, err = svc.ValidateInvitation(context.Background(), token)
		require.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("boundary instant is still valid", func(t *testing.T) {
		svc, notifier, clock := setupService(t)
		created := create(t, svc, "boundary@example.com")

		clock.Set(created.Invitation.ExpiresAt)

		inv, err := svc.ValidateInvitation(context.Background(), notifier.lastCreated(t))
		require.NoError(t, err, "now == expiresAt is not yet expired")
		require.Equal(t, domain.InvitationPending, inv.Status)
	})

	t.Run("cancelled is gone", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "revoked@example.com")

		_, err := svc.CancelInvitation(context.Background(), created.Invitation.ID)
		require.NoError(t, err)

		_, err = svc.ValidateInvitation(context.Background(), notifier.lastCreated(t))
		require.ErrorIs(t, err, ErrInvitationCancelled)
	})
}

func TestAcceptInvitation(t *testing.T) {
	t.Run("creates user carrying the grant", func(t *testing.T) {
		svc, notifier, clock := setupService(t)

		rate := 24.50
		_, err := svc.CreateInvitation(context.Background(), CreateParams{
			Email:       "barkeep@example.com",
			Role:        domain.RoleManager,
			Department:  "bar",
			JobTitle:    "shift lead",
			HourlyRate:  &rate,
			Permissions: []string{"roster:read", "roster:write"},
			CreatedBy:   "admin-1",
		})
		require.NoError(t, err)

		tz := "Australia/Brisbane"
		accepted, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token:       notifier.lastCreated(t),
			Name:        "Sam Barkeep",
			Password:    "correct horse battery staple",
			Preferences: domain.PreferencesPatch{Timezone: &tz},
		})
		require.NoError(t, err)

		user := accepted.User
		require.Equal(t, "barkeep@example.com", user.Email)
		require.Equal(t, domain.RoleManager, user.Role)
		require.Equal(t, "bar", user.Department)
		require.Equal(t, []string{"roster:read", "roster:write"}, user.Permissions)
		require.NotNil(t, user.HourlyRate)
		require.Equal(t, 24.50, *user.HourlyRate)
		require.NotEqual(t, "correct horse battery staple", user.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", user.PasswordHash))

		// Supplied preferences merge over the defaults.
		require.Equal(t, "Australia/Brisbane", user.Preferences.Timezone)
		require.Equal(t, "en", user.Preferences.Language)

		inv := accepted.Invitation
		require.Equal(t, domain.InvitationAccepted, inv.Status)
		require.NotNil(t, inv.AcceptedAt)
		require.Equal(t, clock.Now(), *inv.AcceptedAt)
		require.Equal(t, user.ID, inv.AcceptedBy)
		require.True(t, accepted.Notified)

		stored, err := svc.Store.Users().GetUserByEmail(context.Background(), "barkeep@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
	})

	t.Run("second accept with the same token conflicts", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		create(t, svc, "once@example.com")
		token := notifier.lastCreated(t)

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: token, Name: "First", Password: "correct horse battery staple",
		})
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: token, Name: "Second", Password: "correct horse battery staple",
		})
		require.ErrorIs(t, err, ErrInvitationAccepted)
	})

	t.Run("expired token is gone", func(t *testing.T) {
		svc, notifier, clock := setupService(t)
		create(t, svc, "slow@example.com")
		token := notifier.lastCreated(t)

		clock.Advance(8 * 24 * time.Hour)

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: token, Name: "Slow", Password: "correct horse battery staple",
		})
		require.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("missing name or password rejected before I/O", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		create(t, svc, "incomplete@example.com")
		token := notifier.lastCreated(t)

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{Token: token, Password: "x"})
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = svc.AcceptInvitation(context.Background(), AcceptParams{Token: token, Name: "x"})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("welcome failure is partial success", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		create(t, svc, "nomail@example.com")
		token := notifier.lastCreated(t)
		notifier.fail = true

		res, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: token, Name: "No Mail", Password: "correct horse battery staple",
		})
		require.NoError(t, err)
		require.False(t, res.Notified)
		require.Equal(t, domain.InvitationAccepted, res.Invitation.Status)
	})
}

func TestResendInvitation(t *testing.T) {
	t.Run("rotates token and counts", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "again@example.com")
		original := notifier.lastCreated(t)

		res, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
		require.NoError(t, err)
		require.Equal(t, 1, res.Invitation.ResendCount)
		require.NotNil(t, res.Invitation.LastResentAt)
		require.True(t, res.Notified)

		rotated := notifier.lastResent(t)
		require.NotEqual(t, original, rotated)
		require.Equal(t, cryptox.FingerprintToken(rotated), res.Invitation.TokenHash)

		// The old link is dead, the new one works.
		_, err = svc.ValidateInvitation(context.Background(), original)
		require.ErrorIs(t, err, ErrInvitationNotFound)
		inv, err := svc.ValidateInvitation(context.Background(), rotated)
		require.NoError(t, err)
		require.Equal(t, created.Invitation.ID, inv.ID)
	})

	t.Run("optionally extends the deadline from now", func(t *testing.T) {
		svc, _, clock := setupService(t)
		created := create(t, svc, "extend@example.com")

		clock.Advance(3 * 24 * time.Hour)

		res, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{
			ExtendExpiration: true,
		})
		require.NoError(t, err)
		require.WithinDuration(t, clock.Now().AddDate(0, 0, domain.DefaultExpiryDays), res.Invitation.ExpiresAt, time.Second)
	})

	t.Run("without extension the deadline stands", func(t *testing.T) {
		svc, _, _ := setupService(t)
		created := create(t, svc, "stand@example.com")

		res, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
		require.NoError(t, err)
		require.WithinDuration(t, created.Invitation.ExpiresAt, res.Invitation.ExpiresAt, time.Second)
	})

	t.Run("ceiling", func(t *testing.T) {
		svc, _, _ := setupService(t)
		created := create(t, svc, "persistent@example.com")

		for i := 1; i <= domain.MaxResends; i++ {
			res, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
			require.NoError(t, err)
			require.Equal(t, i, res.Invitation.ResendCount)
		}

		_, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
		require.ErrorIs(t, err, ErrResendLimit)
	})

	t.Run("accepted invitation rejects resend", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "done@example.com")

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: notifier.lastCreated(t), Name: "Done", Password: "correct horse battery staple",
		})
		require.NoError(t, err)

		_, err = svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
		require.ErrorIs(t, err, ErrInvitationAccepted)
	})

	t.Run("expired invitation rejects resend", func(t *testing.T) {
		svc, _, clock := setupService(t)
		created := create(t, svc, "tooslow@example.com")

		clock.Advance(8 * 24 * time.Hour)

		_, err := svc.ResendInvitation(context.Background(), created.Invitation.ID, ResendParams{})
		require.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.ResendInvitation(context.Background(), "01K0000000000000000000TEST", ResendParams{})
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})
}

func TestCancelInvitation(t *testing.T) {
	t.Run("pending cancels", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "revoke@example.com")

		inv, err := svc.CancelInvitation(context.Background(), created.Invitation.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationCancelled, inv.Status)

		// Cancelled is terminal: the token is dead and a fresh invitation
		// for the same email is allowed again.
		_, err = svc.ValidateInvitation(context.Background(), notifier.lastCreated(t))
		require.ErrorIs(t, err, ErrInvitationCancelled)

		create(t, svc, "revoke@example.com")
	})

	t.Run("accepted rejects cancel", func(t *testing.T) {
		svc, notifier, _ := setupService(t)
		created := create(t, svc, "settled@example.com")

		_, err := svc.AcceptInvitation(context.Background(), AcceptParams{
			Token: notifier.lastCreated(t), Name: "Settled", Password: "correct horse battery staple",
		})
		require.NoError(t, err)

		_, err = svc.CancelInvitation(context.Background(), created.Invitation.ID)
		require.ErrorIs(t, err, ErrInvitationAccepted)
	})

	t.Run("cancel twice rejects", func(t *testing.T) {
		svc, _, _ := setupService(t)
		created := create(t, svc, "twice@example.com")

		_, err := svc.CancelInvitation(context.Background(), created.Invitation.ID)
		require.NoError(t, err)

		_, err = svc.CancelInvitation(context.Background(), created.Invitation.ID)
		require.ErrorIs(t, err, ErrInvitationCancelled)
	})
}

func TestListInvitations(t *testing.T) {
	t.Run("filters by status and reconciles expiry", func(t *testing.T) {
		svc, _, clock := setupService(t)

		stale := create(t, svc, "stale@example.com")

		clock.Advance(8 * 24 * time.Hour)
		fresh := create(t, svc, "fresh@example.com")

		// Unfiltered: the stale row is reported expired, not pending.
		items, total, err := svc.ListInvitations(context.Background(), store.ListFilter{})
		require.NoError(t, err)
		require.Equal(t, 2, total)
		byID := map[string]domain.InvitationStatus{}
		for _, it := range items {
			byID[it.ID] = it.Status
		}
		require.Equal(t, domain.InvitationExpired, byID[stale.Invitation.ID])
		require.Equal(t, domain.InvitationPending, byID[fresh.Invitation.ID])

		pending := domain.InvitationPending
		items, total, err = svc.ListInvitations(context.Background(), store.ListFilter{Status: &pending})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, fresh.Invitation.ID, items[0].ID)
	})

	t.Run("pages newest first", func(t *testing.T) {
		svc, _, clock := setupService(t)

		for i := 0; i < 5; i++ {
			create(t, svc, fmt.Sprintf("worker%d@example.com", i))
			clock.Advance(time.Minute)
		}

		items, total, err := svc.ListInvitations(context.Background(), store.ListFilter{Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 5, total)
		require.Len(t, items, 2)
		require.Equal(t, "worker4@example.com", items[0].Email)
		require.Equal(t, "worker3@example.com", items[1].Email)

		items, _, err = svc.ListInvitations(context.Background(), store.ListFilter{Limit: 2, Offset: 4})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "worker0@example.com", items[0].Email)
	})
}

func TestScenarioExpireThenRecreate(t *testing.T) {
	// Create with a short window, let it lapse, watch validation flip it to
	// expired, then invite the same address again.
	svc, notifier, clock := setupService(t)

	res, err := svc.CreateInvitation(context.Background(), CreateParams{
		Email:      "comeback@example.com",
		Role:       domain.RoleEmployee,
		ExpiryDays: 1,
		CreatedBy:  "admin-1",
	})
	require.NoError(t, err)
	token := notifier.lastCreated(t)

	clock.Advance(25 * time.Hour)

	_, err = svc.ValidateInvitation(context.Background(), token)
	require.ErrorIs(t, err, ErrInvitationExpired)

	// The lapsed invitation no longer blocks a new pending one.
	again := create(t, svc, "comeback@example.com")
	require.Equal(t, domain.InvitationPending, again.Invitation.Status)
	require.NotEqual(t, res.Invitation.ID, again.Invitation.ID)
}
