package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/user"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userSelectColumns = `id, email, password_hash, full_name, is_admin, employee_id, created_at, updated_at`

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + ` FROM users WHERE email = $1`

	var u user.User
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, email).Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsAdmin,
			&u.EmployeeID, &u.CreatedAt, &u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}
