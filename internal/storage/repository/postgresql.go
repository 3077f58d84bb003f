// Package repository реализует хранилище данных на основе PostgreSQL
// для управления записями пользователей. Предоставляет методы создания,
// поиска по email и идентификатору и постраничного списка записей.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound возвращается, когда запись пользователя отсутствует в базе.
var ErrUserNotFound = errors.New("user not found")

// UniqueViolationError означает нарушение ограничения уникальности
// (email, nickname или телефон). Хранит имя нарушенного ограничения:
// именно база является арбитром гонки "проверили — вставили".
type UniqueViolationError struct {
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation: %s", e.Constraint)
}

// Код ошибки PostgreSQL для нарушения уникального ограничения.
const pgUniqueViolationCode = "23505"

// Storage инкапсулирует пул соединений с PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	Pool *pgxpool.Pool
}

// New создаёт пул соединений к PostgreSQL и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	poolCfg, err := pgxpool.ParseConfig(storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	poolCfg.MaxConns = 10
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.Pool.Close()
}

func asUniqueViolation(err error) (*UniqueViolationError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName}, true
	}
	return nil, false
}
