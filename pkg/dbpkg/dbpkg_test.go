package dbpkg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestSetupSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := Setup(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.Equal(t, DriverSQLite, db.DriverName())
	require.Equal(t, "SELECT 1 WHERE id = ?", db.Rebind("SELECT 1 WHERE id = ?"))

	// CreateSchema must be safe to run on every start.
	require.NoError(t, CreateSchema(ctx, db))
	require.NoError(t, CreateSchema(ctx, db))

	var n int
	err = db.GetContext(ctx, &n, "SELECT count(*) FROM account")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSetupUnknownDriver(t *testing.T) {
	_, err := Setup(context.Background(), "unknown", "source")
	require.Error(t, err)
}

func TestCreateSchemaUnsupportedDriver(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	err = CreateSchema(context.Background(), sqlx.NewDb(mockDB, "mysql"))
	require.Error(t, err)
}

func TestCreateSchemaPostgres(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS account").WillReturnResult(sqlmock.NewResult(0, 0))

	err = CreateSchema(context.Background(), sqlx.NewDb(mockDB, DriverPostgres))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name       string
		buildStubs func(mock sqlmock.Sqlmock)
		fn         func(tx *sqlx.Tx) error
		checkErr   func(t *testing.T, err error)
	}{
		{
			name: "Commit",
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM account").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(tx *sqlx.Tx) error {
				_, err := tx.Exec("DELETE FROM account WHERE id = $1", 1)
				return err
			},
			checkErr: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "RollbackOnError",
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(tx *sqlx.Tx) error {
				return errBoom
			},
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errBoom)
			},
		},
		{
			name: "RollbackFails",
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(errors.New("connection lost"))
			},
			fn: func(tx *sqlx.Tx) error {
				return errBoom
			},
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errBoom)
				require.ErrorContains(t, err, "connection lost")
			},
		},
		{
			name: "BeginFails",
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errBoom)
			},
			fn: func(tx *sqlx.Tx) error {
				return errors.New("fn must not be called")
			},
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errBoom)
			},
		},
		{
			name: "CommitFails",
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errBoom)
			},
			fn: func(tx *sqlx.Tx) error {
				return nil
			},
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errBoom)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			tc.buildStubs(mock)

			err = WithTx(context.Background(), sqlx.NewDb(mockDB, DriverPostgres), tc.fn)
			tc.checkErr(t, err)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
