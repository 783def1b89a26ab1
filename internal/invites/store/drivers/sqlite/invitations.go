package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
	"github.com/shiftbook/shiftbook/internal/invites/store"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `id, email, token_hash, role, department, job_title,
	hourly_rate, permissions, personal_message, status, expires_at, created_by,
	email_sent_at, resend_count, last_resent_at, accepted_at, accepted_by,
	created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invitations (
			id, email, token_hash, role, department, job_title, hourly_rate,
			permissions, personal_message, status, expires_at, created_by,
			email_sent_at, resend_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Email,
		inv.TokenHash,
		string(inv.Role),
		inv.Department,
		inv.JobTitle,
		mapOptionalFloat(inv.HourlyRate),
		joinFields(inv.Permissions),
		inv.PersonalMessage,
		string(inv.Status),
		inv.ExpiresAt,
		inv.CreatedBy,
		inv.EmailSentAt,
		inv.ResendCount,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	return scanInvitation(row)
}

func (r *invitationsRepo) PendingInvitationExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM invitations WHERE email = ? AND status = 'pending'`,
		email,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *invitationsRepo) UpdateInvitation(
	ctx context.Context,
	id string,
	patch store.InvitationPatch,
) (domain.Invitation, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.ExpiresAt != nil {
		sets = append(sets, "expires_at = ?")
		args = append(args, *patch.ExpiresAt)
	}
	if patch.PersonalMessage != nil {
		sets = append(sets, "personal_message = ?")
		args = append(args, *patch.PersonalMessage)
	}
	if patch.EmailSentAt != nil {
		sets = append(sets, "email_sent_at = ?")
		args = append(args, *patch.EmailSentAt)
	}
	args = append(args, id)

	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Invitation{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Invitation{}, err
	}
	if affected == 0 {
		return domain.Invitation{}, store.ErrNotFound
	}

	return r.GetInvitationByID(ctx, id)
}

func (r *invitationsRepo) MarkInvitationExpired(ctx context.Context, id string, at time.Time) error {
	// Conditional on pending so concurrent lazy-expiry writers are idempotent;
	// zero rows affected just means someone else got there first.
	_, err := r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'expired', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		at, id,
	)
	return err
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id, userID string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'accepted', accepted_at = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		at, userID, at, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) MarkInvitationCancelled(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'cancelled', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		at, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) RecordResend(
	ctx context.Context,
	id, tokenHash string,
	at time.Time,
	newExpiresAt *time.Time,
	limit int,
) (domain.Invitation, error) {
	// Single conditional write: the resend_count guard lives in the WHERE
	// clause, so two concurrent resends can never both push past the limit.
	res, err := r.q.ExecContext(ctx, `
		UPDATE invitations
		SET resend_count = resend_count + 1,
		    token_hash = ?,
		    last_resent_at = ?,
		    email_sent_at = ?,
		    expires_at = COALESCE(?, expires_at),
		    updated_at = ?
		WHERE id = ? AND status = 'pending' AND resend_count < ?`,
		tokenHash, at, at, mapOptionalTime(newExpiresAt), at, id, limit,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Invitation{}, err
	}
	if affected == 0 {
		// Diagnose: missing/not-pending reads as NotFound, ceiling as
		// ResendLimit.
		inv, getErr := r.GetInvitationByID(ctx, id)
		if getErr != nil {
			return domain.Invitation{}, getErr
		}
		if inv.Status == domain.InvitationPending && inv.ResendCount >= limit {
			return domain.Invitation{}, store.ErrResendLimit
		}
		return domain.Invitation{}, store.ErrNotFound
	}

	return r.GetInvitationByID(ctx, id)
}

func (r *invitationsRepo) ListInvitations(
	ctx context.Context,
	f store.ListFilter,
) ([]domain.Invitation, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.Email != "" {
		where = append(where, "email = ?")
		args = append(args, f.Email)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM invitations`+clause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}
	offset := max(f.Offset, 0)

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations`+clause+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]domain.Invitation, 0, limit)
	for rows.Next() {
		inv, err := scanInvitationRows(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInto(s rowScanner) (domain.Invitation, error) {
	var (
		inv          domain.Invitation
		role, status string
		hourlyRate   sql.NullFloat64
		permissions  string
		emailSentAt  sql.NullTime
		lastResentAt sql.NullTime
		acceptedAt   sql.NullTime
		acceptedBy   sql.NullString
	)

	err := s.Scan(
		&inv.ID,
		&inv.Email,
		&inv.TokenHash,
		&role,
		&inv.Department,
		&inv.JobTitle,
		&hourlyRate,
		&permissions,
		&inv.PersonalMessage,
		&status,
		&inv.ExpiresAt,
		&inv.CreatedBy,
		&emailSentAt,
		&inv.ResendCount,
		&lastResentAt,
		&acceptedAt,
		&acceptedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}

	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.HourlyRate = mapNullFloatPtr(hourlyRate)
	inv.Permissions = splitFields(permissions)
	inv.EmailSentAt = mapNullTime(emailSentAt)
	inv.LastResentAt = mapNullTimePtr(lastResentAt)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = mapNullString(acceptedBy)

	return inv, nil
}

func scanInvitation(row *sql.Row) (domain.Invitation, error) {
	inv, err := scanInto(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func scanInvitationRows(rows *sql.Rows) (domain.Invitation, error) {
	return scanInto(rows)
}
