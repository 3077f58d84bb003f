package migrations

import (
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет миграции из каталога path к базе по строке подключения.
// Схема postgres:// переписывается на pgx5://, чтобы golang-migrate
// использовал драйвер pgx/v5.
func Run(databaseURL, path string) error {
	url := strings.Replace(databaseURL, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+path, url)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}
