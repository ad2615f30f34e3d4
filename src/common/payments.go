package common

import (
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/types"
	"staybook/src/utils"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultPaymentMethod = "card"

// CreatePayment records a settled payment. A booking claims it later.
func CreatePayment(db *gorm.DB, userID uint, body *types.CreatePaymentRequestBody) (*models.Payment, error) {
	method := body.Method
	if method == "" {
		method = defaultPaymentMethod
	}
	payment := models.Payment{
		UserID: userID,
		Amount: utils.Round2(body.Amount),
		Method: method,
		Status: types.PAYMENT_PAID,
		PaidAt: time.Now(),
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, apperrors.NewInternalError("insert payment", err)
	}
	log.Info().Uint("payment_id", payment.ID).Uint("user_id", userID).Float64("amount", payment.Amount).Msg("Payment recorded")
	return &payment, nil
}

// SweepOrphanedPayments marks Paid payments that no booking claimed within
// olderThan as Unclaimed so they can be refunded out of band.
func SweepOrphanedPayments(db *gorm.DB, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := db.
		Model(&models.Payment{}).
		Where("status = ? AND paid_at < ?", types.PAYMENT_PAID, cutoff).
		Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.payment_id = payments.id)").
		Update("status", types.PAYMENT_UNCLAIMED)
	if res.Error != nil {
		return 0, apperrors.NewInternalError("sweep payments", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Warn().Int64("count", res.RowsAffected).Time("cutoff", cutoff).Msg("Marked orphaned payments as unclaimed")
	}
	return res.RowsAffected, nil
}
