// Package dbtest wires a gorm handle to go-sqlmock for package tests.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"staybook/src/db"
)

func NewMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), db.Config())
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening gorm database", err)
	}
	t.Cleanup(func() { conn.Close() })

	return gormDB, mock
}
