package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hiking-app/user-service/internal/models"
)

// Полный набор колонок записи пользователя. Хэш пароля выбирается всегда:
// проекция без него выполняется уровнем выше, через models.Sanitize.
const userColumns = `id, email, password_hash, nickname, avatar_url, first_name, last_name, bio,
	      phone_number, points, email_verified_at, status, roles, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nickname, &u.AvatarURL,
		&u.FirstName, &u.LastName, &u.Bio, &u.PhoneNumber, &u.Points,
		&u.EmailVerifiedAt, &u.Status, &u.Roles, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает созданную запись
// со всеми назначенными базой значениями (id, статус, роли, таймстемпы).
// Нарушение уникальности возвращается как *UniqueViolationError.
func (s *Storage) CreateUser(ctx context.Context, entry models.CreateUserEntry) (*models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users (email, password_hash, nickname, avatar_url,
			      first_name, last_name, bio, phone_number)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns
	u, err := scanUser(s.Pool.QueryRow(ctx, query,
		entry.Email, entry.PasswordHash, entry.Nickname, entry.AvatarURL,
		entry.FirstName, entry.LastName, entry.Bio, entry.PhoneNumber))
	if err != nil {
		if uv, ok := asUniqueViolation(err); ok {
			return nil, fmt.Errorf("%s: %w", op, uv)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByEmail возвращает полную запись пользователя (включая хэш пароля)
// по его email или ErrUserNotFound.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindUserByID возвращает полную запись пользователя по его идентификатору
// или ErrUserNotFound.
func (s *Storage) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.FindUserByID"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает страницу записей пользователей, отсортированных по id.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
