package db_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/src/db/dbtest"
)

func TestMockDB(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)

	assert.Equal(t, "postgres", gormDB.Dialector.Name())
	assert.True(t, gormDB.Config.SkipDefaultTransaction)

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	var one int
	require.NoError(t, gormDB.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
	assert.NoError(t, mock.ExpectationsWereMet())
}
