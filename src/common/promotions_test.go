package common

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/src/apperrors"
	"staybook/src/db/dbtest"
	"staybook/src/types"
)

func TestCheckCodeMatchesPromotionFirst(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "promotions" WHERE promotions.code LIKE .* AND promotions.active = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount_percent", "active"}).AddRow(2, "SUMMER", 15, true))

	res, err := CheckCode(gdb, 5, " SUMMER ")
	require.NoError(t, err)
	assert.Equal(t, types.CODE_PROMOTION, res.Type)
	assert.Equal(t, uint(2), res.PromotionID)
	assert.Equal(t, 15.0, res.DiscountPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCodeEscapesWildcards(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "promotions"`).
		WithArgs(`\%`, true, sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "gift_card_purchases"`).WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}))
	mock.ExpectRollback()

	_, err := CheckCode(gdb, 5, "%")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCardCodeIsSingleUse(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "promotions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT gift_card_purchases.id, gift_cards.amount FROM "gift_card_purchases" JOIN gift_cards`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}).AddRow(7, 50))
	mock.ExpectExec(`UPDATE "gift_card_purchases" SET .*"redeemed_by"=.* WHERE id = .* AND used = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := CheckCode(gdb, 5, "ABCD1234EFGH5678")
	require.NoError(t, err)
	assert.Equal(t, types.CODE_GIFT_CARD, res.Type)
	assert.Equal(t, uint(7), res.GiftCardPurchaseID)
	assert.Equal(t, 50.0, res.Amount)

	mock.ExpectQuery(`SELECT \* FROM "promotions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "gift_card_purchases"`).WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}))
	mock.ExpectRollback()

	_, err = CheckCode(gdb, 5, "ABCD1234EFGH5678")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCardLostRace(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "promotions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "gift_card_purchases"`).WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}).AddRow(7, 50))
	mock.ExpectExec(`UPDATE "gift_card_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := CheckCode(gdb, 5, "ABCD1234EFGH5678")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCodeRequiresValue(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	_, err := CheckCode(gdb, 5, "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewGiftCardCode(t *testing.T) {
	code, err := NewGiftCardCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{16}$`), code)

	other, err := NewGiftCardCode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestPurchaseGiftCard(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "gift_cards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "amount"}).AddRow(1, "Weekend", 100))
	mock.ExpectQuery(`INSERT INTO "gift_card_purchases"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WithArgs(5, NOTIFICATION_GIFT_CARD_PURCHASED, sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	purchase, card, err := PurchaseGiftCard(gdb, 5, &types.GiftCardPurchaseRequestBody{GiftCardID: 1, RecipientEmail: "friend@example.com"})
	require.NoError(t, err)
	assert.Equal(t, uint(12), purchase.ID)
	assert.Len(t, purchase.Code, 16)
	assert.False(t, purchase.Used)
	assert.Equal(t, "Weekend", card.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCardPurchaseByCodeIsPrivate(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "gift_card_purchases"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "code"}).AddRow(12, 6, "ABCD1234EFGH5678"))

	_, err := GetGiftCardPurchaseByCode(gdb, 5, "ABCD1234EFGH5678")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}
