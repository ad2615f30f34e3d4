package common

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/src/db/dbtest"
	"staybook/src/types"
)

func TestCreatePaymentIsPaid(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`INSERT INTO "payments"`).
		WithArgs(5, 180.0, "card", "Paid", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))

	p, err := CreatePayment(gdb, 5, &types.CreatePaymentRequestBody{Amount: 179.999})
	require.NoError(t, err)
	assert.Equal(t, uint(20), p.ID)
	assert.Equal(t, types.PAYMENT_PAID, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepOrphanedPayments(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectExec(`UPDATE "payments" SET "status"=.* WHERE \(status = .* AND paid_at < .*\) AND NOT EXISTS \(SELECT 1 FROM bookings WHERE bookings.payment_id = payments.id\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := SweepOrphanedPayments(gdb, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
