package database

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies every pending migration from sourcePath (a file:// URL,
// typically file://migrations).  Up-to-date is not an error.
func Migrate(sourcePath, user, pass, host, port, name string) error {
	m, err := migrate.New(sourcePath, migrateDSN(user, pass, host, port, name))
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}

func migrateDSN(user, pass, host, port, name string) string {
	auth := url.QueryEscape(user)
	if pass != "" {
		auth += ":" + url.QueryEscape(pass)
	}
	return fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s?multiStatements=true", auth, host, port, name)
}
