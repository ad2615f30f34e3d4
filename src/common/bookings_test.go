package common

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/src/apperrors"
	"staybook/src/db/dbtest"
	"staybook/src/models"
	"staybook/src/types"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestRefundFor(t *testing.T) {
	assert.Equal(t, 75.0, RefundFor(100))
	assert.Equal(t, 92.55, RefundFor(123.4))
	assert.Equal(t, 0.0, RefundFor(0))
}

func TestQuoteTotal(t *testing.T) {
	assert.Equal(t, 300.0, QuoteTotal(3, 100, 0, 0))
	assert.Equal(t, 270.0, QuoteTotal(3, 100, 10, 0))
	assert.Equal(t, 220.0, QuoteTotal(3, 100, 10, 50))
	assert.Equal(t, 0.0, QuoteTotal(1, 40, 0, 100))
}

func TestClassifyBookings(t *testing.T) {
	today := day("2026-06-15")
	view := func(id uint, start, end string, status types.BookingStatus, cancelled bool) BookingView {
		return BookingView{
			Booking:         models.Booking{ID: id, StartDate: day(start), EndDate: day(end), Status: status},
			HasCancellation: cancelled,
		}
	}
	buckets := ClassifyBookings([]BookingView{
		view(1, "2026-07-01", "2026-07-04", types.BOOKING_PENDING, false),
		view(2, "2026-05-01", "2026-05-04", types.BOOKING_CONFIRMED, false),
		view(3, "2026-07-01", "2026-07-04", types.BOOKING_CONFIRMED, true),
		view(4, "2026-05-01", "2026-05-04", types.BOOKING_CANCELLED, false),
		view(5, "2026-06-10", "2026-06-15", types.BOOKING_CONFIRMED, false),
	}, today)

	ids := func(bs []BookingView) []uint {
		out := []uint{}
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}
	assert.Equal(t, []uint{1, 5}, ids(buckets.Upcoming))
	assert.Equal(t, []uint{2}, ids(buckets.Past))
	assert.Equal(t, []uint{3, 4}, ids(buckets.Cancelled))
}

func bookingRows(id, userID, spotID uint, status types.BookingStatus, total float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "spot_id", "start_date", "end_date", "status", "total"}).
		AddRow(id, userID, spotID, day("2026-07-01"), day("2026-07-03"), string(status), total)
}

func TestCancelBookingRecordsRefund(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" .* FOR UPDATE`).WillReturnRows(bookingRows(1, 5, 3, types.BOOKING_CONFIRMED, 100))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cancellations"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`INSERT INTO "cancellations"`).
		WithArgs(1, "plans changed", 75.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "bookings" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := CancelBooking(gdb, 5, &types.CancelBookingRequestBody{BookingID: 1, Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, 75.0, c.RefundAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingTwiceConflicts(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 5, 3, types.BOOKING_CANCELLED, 100))
	mock.ExpectRollback()

	_, err := CancelBooking(gdb, 5, &types.CancelBookingRequestBody{BookingID: 1})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	// legacy rows: cancellation present while status still Confirmed
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 5, 3, types.BOOKING_CONFIRMED, 100))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cancellations"`).WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err = CancelBooking(gdb, 5, &types.CancelBookingRequestBody{BookingID: 1})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOfAnotherUser(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 6, 3, types.BOOKING_PENDING, 100))
	mock.ExpectRollback()

	_, err := CancelBooking(gdb, 5, &types.CancelBookingRequestBody{BookingID: 1})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func spotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "title", "price", "capacity"}).AddRow(3, 8, "Sea View Loft", 100, 4)
}

func availabilityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "spot_id", "start_date", "end_date"}).AddRow(1, 3, day("2026-01-01"), day("2026-12-31"))
}

func paymentRows(userID uint, amount float64, status types.PaymentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "amount", "status"}).AddRow(20, userID, amount, string(status))
}

func bookingBody() *types.CreateBookingRequestBody {
	return &types.CreateBookingRequestBody{
		SpotID:    3,
		StartDate: "2026-07-01",
		EndDate:   "2026-07-03",
		Guests:    2,
		PaymentID: 20,
	}
}

func TestCreateBookingWithPromotion(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	promo := uint(2)
	body := bookingBody()
	body.PromotionID = &promo

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots" .* FOR UPDATE`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT \* FROM "payments" .* FOR UPDATE`).WillReturnRows(paymentRows(5, 180, types.PAYMENT_PAID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT \* FROM "promotions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount_percent", "active"}).AddRow(2, "SUMMER", 10, true))
	mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(44))
	mock.ExpectCommit()

	booking, err := CreateBooking(gdb, 5, body)
	require.NoError(t, err)
	assert.Equal(t, uint(44), booking.ID)
	assert.Equal(t, 180.0, booking.Total)
	assert.Equal(t, types.BOOKING_PENDING, booking.Status)
	assert.Equal(t, uint(20), *booking.PaymentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingWithGiftCard(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	gift := uint(7)
	body := bookingBody()
	body.GiftCardPurchaseID = &gift

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(paymentRows(5, 150, types.PAYMENT_PAID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT gift_card_purchases.id, gift_cards.amount FROM "gift_card_purchases" JOIN gift_cards .* WHERE gift_card_purchases.id = .* AND gift_card_purchases.used = .* AND gift_card_purchases.redeemed_by = `).
		WithArgs(7, true, 5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}).AddRow(7, 50))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(45))
	mock.ExpectCommit()

	booking, err := CreateBooking(gdb, 5, body)
	require.NoError(t, err)
	assert.Equal(t, 150.0, booking.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsGiftCardRedeemedByAnotherUser(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	gift := uint(7)
	body := bookingBody()
	body.GiftCardPurchaseID = &gift

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(paymentRows(5, 150, types.PAYMENT_PAID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	// purchase 7 was redeemed by someone else, so the predicate matches nothing
	mock.ExpectQuery(`FROM "gift_card_purchases" .* gift_card_purchases.redeemed_by = `).
		WithArgs(7, true, 5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}))
	mock.ExpectRollback()

	_, err := CreateBooking(gdb, 5, body)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingOverlapConflicts(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE bookings.spot_id = .* AND bookings.status <> .*NOT EXISTS`).
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err := CreateBooking(gdb, 5, bookingBody())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsWrongAmount(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(paymentRows(5, 150, types.PAYMENT_PAID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
	mock.ExpectRollback()

	_, err := CreateBooking(gdb, 5, bookingBody())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "200.00")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPaymentChecks(t *testing.T) {
	cases := []struct {
		name    string
		rows    *sqlmock.Rows
		claimed int
		want    apperrors.ErrorType
	}{
		{"missing", sqlmock.NewRows([]string{"id"}), 0, apperrors.ErrorTypeNotFound},
		{"other user", paymentRows(6, 200, types.PAYMENT_PAID), 0, apperrors.ErrorTypeForbidden},
		{"unclaimed", paymentRows(5, 200, types.PAYMENT_UNCLAIMED), 0, apperrors.ErrorTypeConflict},
		{"already used", paymentRows(5, 200, types.PAYMENT_PAID), 1, apperrors.ErrorTypeConflict},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gdb, mock := dbtest.NewMockDB(t)
			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
			mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
			mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(0))
			mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(c.rows)
			if c.want == apperrors.ErrorTypeConflict && c.claimed > 0 {
				mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(countRows(c.claimed))
			}
			mock.ExpectRollback()

			_, err := CreateBooking(gdb, 5, bookingBody())
			assert.True(t, apperrors.IsType(err, c.want), "got %v", err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateBookingStayChecks(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	body := bookingBody()
	body.EndDate = body.StartDate
	_, err := CreateBooking(gdb, 5, body)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	body = bookingBody()
	body.Guests = 9
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectRollback()
	_, err = CreateBooking(gdb, 5, body)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	body = bookingBody()
	body.StartDate, body.EndDate = "2027-01-02", "2027-01-05"
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(spotRows())
	mock.ExpectQuery(`SELECT \* FROM "availabilities"`).WillReturnRows(availabilityRows())
	mock.ExpectRollback()
	_, err = CreateBooking(gdb, 5, body)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "spots"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()
	_, err = CreateBooking(gdb, 5, bookingBody())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingNotifiesGuest(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 6, 3, types.BOOKING_PENDING, 200))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spots" JOIN owners`).WillReturnRows(countRows(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cancellations"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`UPDATE "bookings" SET "status"=.* WHERE id = .* AND bookings.status = `).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WithArgs(6, NOTIFICATION_BOOKING_CONFIRMED, sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	booking, err := ConfirmBooking(gdb, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingGuards(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 6, 3, types.BOOKING_PENDING, 200))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spots"`).WillReturnRows(countRows(0))
	mock.ExpectRollback()
	_, err := ConfirmBooking(gdb, 5, 1)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 6, 3, types.BOOKING_CONFIRMED, 200))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spots"`).WillReturnRows(countRows(1))
	mock.ExpectRollback()
	_, err = ConfirmBooking(gdb, 5, 1)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()
	_, err = ConfirmBooking(gdb, 5, 1)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingLosesRaceToCancel(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(1, 6, 3, types.BOOKING_PENDING, 200))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spots" JOIN owners`).WillReturnRows(countRows(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cancellations"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`UPDATE "bookings" SET "status"=.* WHERE id = .* AND bookings.status = `).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := ConfirmBooking(gdb, 8, 1)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
