package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/utils"
)

// ProfileRepo persists application accounts in the `profiles` table.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileCols = `id, full_name, email, phone, password_hash, role, is_active, created_at, updated_at`

// Create inserts a profile and returns its ID.  The email is normalized to
// lower case; a duplicate email maps to ErrEmailExists.
func (r *ProfileRepo) Create(ctx context.Context, fullName, email, phone, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (full_name, email, phone, password_hash, role) VALUES (?,?,?,?,?)",
		fullName, email, phone, hash, role)
	if err != nil {
		if IsDuplicateEntry(err) {
			return 0, ErrEmailExists
		}
		return 0, ClassifyStoreError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *ProfileRepo) scanRow(row *sql.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.PasswordHash,
		&p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetByEmail fetches a profile by normalized email.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE email=? LIMIT 1", email))
}

// GetByID fetches a profile by id.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.Profile, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE id=? LIMIT 1", id))
}

// ListStaff returns every active STAFF profile ordered by name.  Used by
// the admin aggregation sweep to build the staff population of an event.
func (r *ProfileRepo) ListStaff(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE role='STAFF' AND is_active=1 ORDER BY full_name")
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.PasswordHash,
			&p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
