package common

import (
	"errors"
	"fmt"
	"math"
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/models/scopes"
	"staybook/src/types"
	"staybook/src/utils"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingView struct {
	models.Booking
	SpotTitle       string   `json:"spotTitle"`
	HasCancellation bool     `json:"-"`
	RefundAmount    *float64 `json:"refundAmount,omitempty"`
}

// Cancelled treats a cancellation row and the status field as equivalent
// signals so rows written before the status was kept in sync still count.
func (b *BookingView) Cancelled() bool {
	return b.Status == types.BOOKING_CANCELLED || b.HasCancellation
}

type BookingBuckets struct {
	Upcoming  []BookingView `json:"upcoming"`
	Past      []BookingView `json:"past"`
	Cancelled []BookingView `json:"cancelled"`
}

// ClassifyBookings puts each booking in exactly one bucket; cancellation wins
// over dates.
func ClassifyBookings(bookings []BookingView, today time.Time) *BookingBuckets {
	buckets := &BookingBuckets{
		Upcoming:  []BookingView{},
		Past:      []BookingView{},
		Cancelled: []BookingView{},
	}
	for _, b := range bookings {
		switch {
		case b.Cancelled():
			buckets.Cancelled = append(buckets.Cancelled, b)
		case utils.DateOnly(b.EndDate).Before(today):
			buckets.Past = append(buckets.Past, b)
		default:
			buckets.Upcoming = append(buckets.Upcoming, b)
		}
	}
	return buckets
}

// RefundFor is the amount returned when a booking with total is cancelled.
func RefundFor(total float64) float64 {
	return utils.Round2(total * types.REFUND_RATE)
}

// QuoteTotal prices a stay: nights at price, less the promotion percentage,
// less the gift card value, never below zero.
func QuoteTotal(nights int, price, discountPercent, giftCardValue float64) float64 {
	total := float64(nights) * price
	if discountPercent > 0 {
		total -= total * discountPercent / 100
	}
	total -= giftCardValue
	return math.Max(0, utils.Round2(total))
}

func bookingViewQuery(db *gorm.DB) *gorm.DB {
	return db.
		Table("bookings").
		Select("bookings.*, spots.title AS spot_title, " +
			"cancellations.id IS NOT NULL AS has_cancellation, cancellations.refund_amount AS refund_amount").
		Joins("JOIN spots ON spots.id = bookings.spot_id").
		Joins("LEFT JOIN cancellations ON cancellations.booking_id = bookings.id")
}

func ListUserBookings(db *gorm.DB, userID uint) (*BookingBuckets, error) {
	var rows []BookingView
	err := bookingViewQuery(db).
		Where("bookings.user_id = ?", userID).
		Order("bookings.start_date DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("list bookings", err)
	}
	return ClassifyBookings(rows, utils.Today()), nil
}

func ListOwnerBookings(db *gorm.DB, userID uint) (*BookingBuckets, error) {
	var rows []BookingView
	err := bookingViewQuery(db).
		Joins("JOIN owners ON owners.id = spots.owner_id").
		Where("owners.user_id = ?", userID).
		Order("bookings.start_date DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("list owner bookings", err)
	}
	return ClassifyBookings(rows, utils.Today()), nil
}

type giftCardValue struct {
	ID     uint
	Amount float64
}

// giftCardValueForBooking returns the value of a purchase that userID already
// redeemed through CheckCode and that no other booking has consumed.
func giftCardValueForBooking(tx *gorm.DB, userID, purchaseID uint) (float64, error) {
	var gc giftCardValue
	res := tx.
		Table("gift_card_purchases").
		Select("gift_card_purchases.id, gift_cards.amount").
		Joins("JOIN gift_cards ON gift_cards.id = gift_card_purchases.gift_card_id").
		Where("gift_card_purchases.id = ? AND gift_card_purchases.used = ? AND gift_card_purchases.redeemed_by = ?", purchaseID, true, userID).
		Limit(1).
		Scan(&gc)
	if res.Error != nil {
		return 0, apperrors.NewInternalError("load gift card", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.NewValidationError("gift card has not been redeemed by you")
	}
	var applied int64
	if err := tx.Model(&models.Booking{}).Where("gift_card_purchase_id = ?", purchaseID).Count(&applied).Error; err != nil {
		return 0, apperrors.NewInternalError("count gift card bookings", err)
	}
	if applied > 0 {
		return 0, apperrors.NewConflictError("gift card already applied to a booking")
	}
	return gc.Amount, nil
}

// CreateBooking validates the stay and the payment, prices it and inserts
// the booking as Pending, all inside one transaction. The spot row is
// locked so concurrent requests for the same spot cannot double book.
func CreateBooking(db *gorm.DB, userID uint, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	start, err := utils.ParseDate(body.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	end, err := utils.ParseDate(body.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("endDate must be after startDate")
	}
	guests := body.Guests
	if guests == 0 {
		guests = 1
	}

	var booking models.Booking
	err = db.Transaction(func(tx *gorm.DB) error {
		var spot models.Spot
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", body.SpotID).
			First(&spot).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("spot not found")
		}
		if err != nil {
			return apperrors.NewInternalError("load spot", err)
		}
		if guests > spot.Capacity {
			return apperrors.NewValidationError(fmt.Sprintf("spot accepts at most %d guests", spot.Capacity))
		}

		var windows []models.Availability
		if err := tx.Where("spot_id = ?", spot.ID).Limit(1).Find(&windows).Error; err != nil {
			return apperrors.NewInternalError("load availability", err)
		}
		if len(windows) == 0 || start.Before(utils.DateOnly(windows[0].StartDate)) || end.After(utils.DateOnly(windows[0].EndDate)) {
			return apperrors.NewValidationError("dates are outside the spot availability")
		}

		var overlapping int64
		err = tx.
			Model(&models.Booking{}).
			Where("bookings.spot_id = ?", spot.ID).
			Scopes(scopes.NotCancelled, scopes.Overlapping(start, end)).
			Count(&overlapping).
			Error
		if err != nil {
			return apperrors.NewInternalError("count overlapping bookings", err)
		}
		if overlapping > 0 {
			return apperrors.NewConflictError("spot is already booked for these dates")
		}

		var payment models.Payment
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", body.PaymentID).
			First(&payment).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("payment not found")
		}
		if err != nil {
			return apperrors.NewInternalError("load payment", err)
		}
		if payment.UserID != userID {
			return apperrors.NewForbiddenError("payment belongs to another user")
		}
		if payment.Status != types.PAYMENT_PAID {
			return apperrors.NewConflictError("payment is not available")
		}
		var claimed int64
		if err := tx.Model(&models.Booking{}).Where("payment_id = ?", payment.ID).Count(&claimed).Error; err != nil {
			return apperrors.NewInternalError("count payment bookings", err)
		}
		if claimed > 0 {
			return apperrors.NewConflictError("payment already used by another booking")
		}

		var discount float64
		if body.PromotionID != nil {
			var promo models.Promotion
			err := tx.
				Scopes(scopes.ActiveOn(utils.Today())).
				Where("promotions.id = ?", *body.PromotionID).
				First(&promo).
				Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("promotion is not valid")
			}
			if err != nil {
				return apperrors.NewInternalError("load promotion", err)
			}
			discount = promo.DiscountPercent
		}
		var giftValue float64
		if body.GiftCardPurchaseID != nil {
			if giftValue, err = giftCardValueForBooking(tx, userID, *body.GiftCardPurchaseID); err != nil {
				return err
			}
		}

		total := QuoteTotal(utils.Nights(start, end), spot.Price, discount, giftValue)
		if utils.Round2(payment.Amount) != total {
			return apperrors.NewValidationError(fmt.Sprintf("payment amount %.2f does not match booking total %.2f", payment.Amount, total))
		}

		paymentID := payment.ID
		booking = models.Booking{
			UserID:             userID,
			SpotID:             spot.ID,
			StartDate:          start,
			EndDate:            end,
			Guests:             guests,
			Status:             types.BOOKING_PENDING,
			Total:              total,
			PromotionID:        body.PromotionID,
			GiftCardPurchaseID: body.GiftCardPurchaseID,
			PaymentID:          &paymentID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return apperrors.NewInternalError("insert booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("booking_id", booking.ID).Uint("spot_id", booking.SpotID).Uint("user_id", userID).Float64("total", booking.Total).Msg("Booking created")
	return &booking, nil
}

func lockBooking(tx *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", bookingID).
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("load booking", err)
	}
	return &booking, nil
}

func hasCancellation(tx *gorm.DB, bookingID uint) (bool, error) {
	var n int64
	err := tx.Model(&models.Cancellation{}).Where("booking_id = ?", bookingID).Count(&n).Error
	return n > 0, err
}

// CancelBooking records the cancellation with its refund and flips the
// status in the same transaction.
func CancelBooking(db *gorm.DB, userID uint, body *types.CancelBookingRequestBody) (*models.Cancellation, error) {
	var cancellation models.Cancellation
	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, body.BookingID)
		if err != nil {
			return err
		}
		if booking.UserID != userID {
			return apperrors.NewForbiddenError("you do not own this booking")
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return apperrors.NewConflictError("booking already cancelled")
		}
		cancelled, err := hasCancellation(tx, booking.ID)
		if err != nil {
			return apperrors.NewInternalError("count cancellations", err)
		}
		if cancelled {
			return apperrors.NewConflictError("booking already cancelled")
		}
		cancellation = models.Cancellation{
			BookingID:    booking.ID,
			Reason:       body.Reason,
			RefundAmount: RefundFor(booking.Total),
			CancelledAt:  time.Now(),
		}
		if err := tx.Create(&cancellation).Error; err != nil {
			return apperrors.NewInternalError("insert cancellation", err)
		}
		err = tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", types.BOOKING_CANCELLED).
			Error
		if err != nil {
			return apperrors.NewInternalError("update booking status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("booking_id", body.BookingID).Float64("refund", cancellation.RefundAmount).Msg("Booking cancelled")
	return &cancellation, nil
}

// ConfirmBooking moves a Pending booking to Confirmed on behalf of the spot
// owner and notifies the guest.
func ConfirmBooking(db *gorm.DB, userID, bookingID uint) (*models.Booking, error) {
	var booking *models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if booking, err = lockBooking(tx, bookingID); err != nil {
			return err
		}
		var owned int64
		err = tx.
			Table("spots").
			Joins("JOIN owners ON owners.id = spots.owner_id").
			Where("spots.id = ? AND owners.user_id = ?", booking.SpotID, userID).
			Count(&owned).
			Error
		if err != nil {
			return apperrors.NewInternalError("check spot owner", err)
		}
		if owned == 0 {
			return apperrors.NewForbiddenError("you do not own this spot")
		}
		if booking.Status != types.BOOKING_PENDING {
			return apperrors.NewConflictError(fmt.Sprintf("cannot confirm a %s booking", booking.Status))
		}
		cancelled, err := hasCancellation(tx, booking.ID)
		if err != nil {
			return apperrors.NewInternalError("count cancellations", err)
		}
		if cancelled {
			return apperrors.NewConflictError("cannot confirm a Cancelled booking")
		}
		res := tx.
			Model(&models.Booking{}).
			Scopes(scopes.WithID(booking.ID), scopes.WithPendingStatus).
			Update("status", types.BOOKING_CONFIRMED)
		if res.Error != nil {
			return apperrors.NewInternalError("update booking status", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewConflictError("booking is no longer Pending")
		}
		booking.Status = types.BOOKING_CONFIRMED
		return Notify(tx, booking.UserID, NOTIFICATION_BOOKING_CONFIRMED,
			fmt.Sprintf("Your booking #%d has been confirmed.", booking.ID))
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("booking_id", bookingID).Uint("owner_user_id", userID).Msg("Booking confirmed")
	return booking, nil
}
