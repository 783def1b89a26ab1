package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shiftbook/shiftbook/internal/invites/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, email, name, password_hash, role, department,
	job_title, hourly_rate, permissions, preferences, contact_phone,
	created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO users (
			id, email, name, password_hash, role, department, job_title,
			hourly_rate, permissions, preferences, contact_phone,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		string(u.Role),
		u.Department,
		u.JobTitle,
		mapOptionalFloat(u.HourlyRate),
		joinFields(u.Permissions),
		string(prefs),
		u.ContactPhone,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u           domain.User
		role        string
		hourlyRate  sql.NullFloat64
		permissions string
		prefs       string
	)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&role,
		&u.Department,
		&u.JobTitle,
		&hourlyRate,
		&permissions,
		&prefs,
		&u.ContactPhone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Role = domain.Role(role)
	u.HourlyRate = mapNullFloatPtr(hourlyRate)
	u.Permissions = splitFields(permissions)
	if err := json.Unmarshal([]byte(prefs), &u.Preferences); err != nil {
		return domain.User{}, err
	}

	return u, nil
}
