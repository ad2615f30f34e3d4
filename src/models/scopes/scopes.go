package scopes

import (
	"staybook/src/types"
	"time"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithIDs(ids ...uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}

func ForUser(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func WithPendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("bookings.status = ?", types.BOOKING_PENDING)
}

// NotCancelled keeps bookings that carry neither cancellation signal.
func NotCancelled(db *gorm.DB) *gorm.DB {
	return db.
		Where("bookings.status <> ?", types.BOOKING_CANCELLED).
		Where("NOT EXISTS (SELECT 1 FROM cancellations WHERE cancellations.booking_id = bookings.id)")
}

// ActiveOn keeps promotions that are switched on and valid on day.
func ActiveOn(day time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("promotions.active = ?", true).
			Where("promotions.start_date <= ? AND promotions.end_date >= ?", day, day)
	}
}

// Overlapping keeps bookings whose stay intersects [start, end).
func Overlapping(start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bookings.start_date < ? AND bookings.end_date > ?", end, start)
	}
}
