package users

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
	"wayfarer/internal/params"
)

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, in ProfileUpdate) (*User, error)
	ListWithReviewCounts(ctx context.Context, p params.Pagination) ([]AdminUserRow, int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const userColumns = `id, username, email, password_hash, full_name, bio, country, role,
	is_active, is_verified, last_login, created_at, updated_at`

// Create inserts the user. Uniqueness of email and username is left to the
// table constraints so concurrent registrations cannot both succeed.
func (r *Repository) Create(ctx context.Context, user *User) error {
	query := `
	  INSERT INTO users (username, email, password_hash, full_name, country)
	  VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'Unknown'))
	  RETURNING id, country, role, is_active, is_verified, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		user.Username, strings.ToLower(user.Email), user.Password.hash, user.FullName, user.Country,
	).Scan(&user.ID, &user.Country, &user.Role, &user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if constraint, ok := dbx.IsUniqueViolation(err); ok {
			switch constraint {
			case "users_username_key":
				return ErrDuplicateUsername
			default:
				return ErrDuplicateEmail
			}
		}
		return dbx.Translate("create user", "user", err)
	}
	user.Email = strings.ToLower(user.Email)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.scanOne(ctx, "get user by id", query, id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.scanOne(ctx, "get user by email", query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) scanOne(ctx context.Context, op, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password.hash,
		&u.FullName,
		&u.Bio,
		&u.Country,
		&u.Role,
		&u.IsActive,
		&u.IsVerified,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, dbx.Translate(op, "user", err)
	}
	return &u, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return errs.Infra("touch last login", err)
	}
	return nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id int64, in ProfileUpdate) (*User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    bio = COALESCE($2, bio),
		    country = COALESCE($3, country),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var u User
	err := r.db.QueryRow(ctx, query, in.FullName, in.Bio, in.Country, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password.hash, &u.FullName, &u.Bio, &u.Country,
		&u.Role, &u.IsActive, &u.IsVerified, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, dbx.Translate("update profile", "user", err)
	}
	return &u, nil
}

// ListWithReviewCounts lists users newest first with the number of reviews
// each has written, for the admin dashboard.
func (r *Repository) ListWithReviewCounts(ctx context.Context, p params.Pagination) ([]AdminUserRow, int, error) {
	query := `
		SELECT u.id, u.username, u.email, u.role, u.full_name,
		       COUNT(rv.id) AS review_count,
		       u.created_at,
		       COUNT(*) OVER() AS total_count
		FROM users u
		LEFT JOIN reviews rv ON rv.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, errs.Infra("list users", err)
	}
	defer rows.Close()

	out := []AdminUserRow{}
	total := 0
	for rows.Next() {
		var u AdminUserRow
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.FullName, &u.ReviewCount, &u.CreatedAt, &total); err != nil {
			return nil, 0, errs.Infra("scan user row", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errs.Infra("rows users", err)
	}

	// An out of range page returns no rows and therefore no window total.
	if len(out) == 0 && p.Offset > 0 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
			return nil, 0, errs.Infra("count users", err)
		}
	}

	return out, total, nil
}

// NewUser builds a User with a hashed password.
func NewUser(username, email, plainPassword string, fullName *string, country string) (*User, error) {
	u := &User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		FullName: fullName,
		Country:  country,
	}
	if err := u.Password.Set(plainPassword); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return u, nil
}
