package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, phone, password_hash, point, is_admin, created_on, updated_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone, password_hash, point, is_admin, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Phone, u.PasswordHash, u.Point, u.IsAdmin, now, now).Scan(&u.ID)
	if err != nil {
		if uniqueViolation(err, "users_email_key") {
			return apperr.Conflict("email is already registered")
		}
		return err
	}
	u.CreatedOn = now.Format(time.RFC3339)
	u.UpdatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Point, &u.IsAdmin, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format(time.RFC3339)
	u.UpdatedOn = updatedOn.Format(time.RFC3339)
	return u, nil
}

func (r *userRepository) ChargePoints(ctx context.Context, userID, amount int32) (int32, error) {
	if amount <= 0 {
		return 0, apperr.Validation("charge amount must be positive")
	}
	var balance int32
	query := `UPDATE users SET point = point + $1, updated_on = $2 WHERE id = $3 RETURNING point`
	err := r.db.QueryRowContext(ctx, query, amount, time.Now().UTC(), userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("user not found")
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}
