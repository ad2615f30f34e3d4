package types

import (
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt,omitempty"`
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "Pending"
	BOOKING_CONFIRMED BookingStatus = "Confirmed"
	BOOKING_CANCELLED BookingStatus = "Cancelled"
)

type PaymentStatus string

const (
	PAYMENT_PAID      PaymentStatus = "Paid"
	PAYMENT_UNCLAIMED PaymentStatus = "Unclaimed"
)

type CodeType string

const (
	CODE_PROMOTION CodeType = "promotion"
	CODE_GIFT_CARD CodeType = "giftcard"
)

// REFUND_RATE is the share of Booking.Total returned on cancellation.
const REFUND_RATE = 0.75

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type SpotURIParams struct {
	SpotID uint `uri:"spotId" binding:"required"`
}

type BookingURIParams struct {
	BookingID uint `uri:"bookingId" binding:"required"`
}

type GiftCardCodeURIParams struct {
	Code string `uri:"code" binding:"required"`
}

type SignupRequestBody struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty" binding:"omitempty,isodate"`
	Address     string `json:"address,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequestBody struct {
	FirstName   *string `json:"firstName,omitempty" binding:"omitempty,min=1"`
	LastName    *string `json:"lastName,omitempty" binding:"omitempty,min=1"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" binding:"omitempty,isodate"`
	Address     *string `json:"address,omitempty"`
}

type ChangePasswordRequestBody struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type SpotRequestBody struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description,omitempty"`
	Address       string   `json:"address,omitempty"`
	CategoryID    uint     `json:"categoryId" binding:"required"`
	AmenityIDs    []uint   `json:"amenityIds,omitempty"`
	Images        []string `json:"images,omitempty" binding:"omitempty,dive,url"`
	CityID        uint     `json:"cityId" binding:"required"`
	CountryID     uint     `json:"countryId" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Latitude      float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude     float64  `json:"longitude" binding:"min=-180,max=180"`
	AvailableFrom string   `json:"availableFrom,omitempty" binding:"omitempty,isodate"`
	AvailableTo   string   `json:"availableTo,omitempty" binding:"omitempty,isodate,afterdate=AvailableFrom"`
}

type DeleteSpotRequestBody struct {
	SpotID uint `json:"spotId" binding:"required"`
}

type UploadURLRequestBody struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
}

type SearchSpotsQuery struct {
	City      string  `form:"city"`
	Country   string  `form:"country"`
	Category  string  `form:"category"`
	Guests    int     `form:"guests" binding:"omitempty,min=1"`
	MinPrice  float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice  float64 `form:"maxPrice" binding:"omitempty,min=0"`
	StartDate string  `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string  `form:"endDate" binding:"omitempty,isodate,afterdate=StartDate"`
}

type TopSpotsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type CitiesQuery struct {
	CountryID uint `form:"countryId"`
}

type CreatePaymentRequestBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method,omitempty" binding:"omitempty,oneof=card paypal bank_transfer"`
}

type CreateBookingRequestBody struct {
	SpotID             uint   `json:"spotId" binding:"required"`
	StartDate          string `json:"startDate" binding:"required,isodate"`
	EndDate            string `json:"endDate" binding:"required,isodate,afterdate=StartDate"`
	Guests             int    `json:"guests,omitempty" binding:"omitempty,min=1"`
	PaymentID          uint   `json:"paymentId" binding:"required"`
	PromotionID        *uint  `json:"promotionId,omitempty"`
	GiftCardPurchaseID *uint  `json:"giftCardPurchaseId,omitempty"`
}

type CancelBookingRequestBody struct {
	BookingID uint   `json:"bookingId" binding:"required"`
	Reason    string `json:"reason,omitempty" binding:"max=500"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required,oneof=Confirmed"`
}

type CheckCodeRequestBody struct {
	Code string `json:"code" binding:"required,max=64"`
}

type ToggleFavoriteRequestBody struct {
	SpotID uint `json:"spotId" binding:"required"`
}

type SubmitReviewRequestBody struct {
	SpotID  uint   `json:"spotId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"max=2000"`
}

type MarkNotificationReadRequestBody struct {
	NotificationID uint `json:"notificationId" binding:"required"`
}

type GiftCardPurchaseRequestBody struct {
	GiftCardID     uint   `json:"giftCardId" binding:"required"`
	RecipientEmail string `json:"recipientEmail,omitempty" binding:"omitempty,email"`
}

type ContactMessageRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject,omitempty" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}
