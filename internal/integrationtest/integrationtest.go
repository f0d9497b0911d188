// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/cmd/httpserver"
	"github.com/go-petr/account-api/internal/accountrepo"
	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/configpkg"
	"github.com/go-petr/account-api/pkg/dbpkg"
	"github.com/go-petr/account-api/pkg/randompkg"

	_ "modernc.org/sqlite"
)

// Config returns the configuration used by test servers.
func Config() configpkg.Config {
	return configpkg.Config{
		DBDriver:           dbpkg.DriverSQLite,
		ServerAddress:      "127.0.0.1:0",
		Environement:       "test",
		ServiceName:        "account-management-api",
		CORSAllowedOrigins: []string{"*"},
		ShutdownTimeout:    time.Second,
	}
}

// SetupServer returns test server backed by a fresh database.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config := Config()
	db := SetupDB(t)
	logger := zerolog.Nop()

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

// SetupDB sets up a SQLite database with the account schema in a temporary directory.
//
// The database is closed once the test is complete.
func SetupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	source := filepath.Join(t.TempDir(), "accounts.db")

	db, err := dbpkg.Setup(ctx, dbpkg.DriverSQLite, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.CreateSchema(ctx, db); err != nil {
		t.Fatalf("schema creation failed. err: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// Flush removes all accounts without resetting the id sequence.
func Flush(t *testing.T, db *sqlx.DB) {
	t.Helper()

	if _, err := db.Exec(`DELETE FROM account`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SeedAccount stores an account with random data.
func SeedAccount(t *testing.T, db *sqlx.DB) domain.Account {
	t.Helper()

	phone := randompkg.Phone()
	arg := domain.CreateAccountParams{
		Name:  randompkg.Name(),
		Email: randompkg.Email(),
		Phone: &phone,
	}

	account, err := accountrepo.New(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("seeding account failed. err: %v", err)
	}

	return account
}
