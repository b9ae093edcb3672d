package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestHealthCheck(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, HealthCheck(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_Down(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("SELECT 1").WillReturnError(errors.New("connection refused"))

	assert.Error(t, HealthCheck(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
