package common

import (
	"errors"
	"staybook/src/apperrors"
	"staybook/src/config"
	"staybook/src/models"
	"staybook/src/models/scopes"
	"staybook/src/types"
	"staybook/src/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

const defaultTopSpots = 5

type SpotSummary struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Category  string  `json:"category"`
	Image     string  `json:"image,omitempty"`
	AvgRating float64 `json:"avgRating"`
}

type TopSpot struct {
	SpotSummary
	BookingCount int64 `json:"bookingCount"`
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func newDateRange(start, end time.Time) DateRange {
	return DateRange{StartDate: start.Format(config.DATE_FORMAT), EndDate: end.Format(config.DATE_FORMAT)}
}

type ReviewView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type SpotDetails struct {
	models.Spot
	Category     *models.Category `json:"category"`
	Amenities    []models.Amenity `json:"amenities"`
	Images       []string         `json:"images"`
	Reviews      []ReviewView     `json:"reviews"`
	Availability *DateRange       `json:"availability"`
	Bookings     []DateRange      `json:"bookings"`
}

type SpotAvailability struct {
	SpotID       uint        `json:"spotId"`
	Availability *DateRange  `json:"availability"`
	Booked       []DateRange `json:"booked"`
}

const activeBookingSQL = "bookings.status <> ? AND NOT EXISTS (SELECT 1 FROM cancellations WHERE cancellations.booking_id = bookings.id)"

const spotSummaryColumns = `spots.id, spots.title, spots.slug, spots.price, spots.capacity,
	cities.name AS city, countries.name AS country, categories.name AS category,
	(SELECT media.url FROM spot_media JOIN media ON media.id = spot_media.media_id
		WHERE spot_media.spot_id = spots.id ORDER BY spot_media.position LIMIT 1) AS image,
	COALESCE((SELECT AVG(reviews.rating) FROM reviews WHERE reviews.spot_id = spots.id), 0) AS avg_rating`

func spotSummaryQuery(db *gorm.DB) *gorm.DB {
	return spotSummaryTable(db).Select(spotSummaryColumns)
}

func spotSummaryTable(db *gorm.DB) *gorm.DB {
	return db.
		Table("spots").
		Joins("LEFT JOIN cities ON cities.id = spots.city_id").
		Joins("LEFT JOIN countries ON countries.id = spots.country_id").
		Joins("LEFT JOIN spot_spot_categories ON spot_spot_categories.spot_id = spots.id").
		Joins("LEFT JOIN categories ON categories.id = spot_spot_categories.category_id")
}

func ListSpots(db *gorm.DB) ([]SpotSummary, error) {
	spots := []SpotSummary{}
	if err := spotSummaryQuery(db).Order("spots.id").Scan(&spots).Error; err != nil {
		return nil, apperrors.NewInternalError("list spots", err)
	}
	return spots, nil
}

func ListOwnerSpots(db *gorm.DB, userID uint) ([]SpotSummary, error) {
	spots := []SpotSummary{}
	err := spotSummaryQuery(db).
		Joins("JOIN owners ON owners.id = spots.owner_id").
		Where("owners.user_id = ?", userID).
		Order("spots.id").
		Scan(&spots).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("list owner spots", err)
	}
	return spots, nil
}

func ListFavoriteSpots(db *gorm.DB, userID uint) ([]SpotSummary, error) {
	spots := []SpotSummary{}
	err := spotSummaryQuery(db).
		Joins("JOIN favorites ON favorites.spot_id = spots.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&spots).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("list favorites", err)
	}
	return spots, nil
}

// TopBookedSpots ranks spots by their count of bookings that are not cancelled.
func TopBookedSpots(db *gorm.DB, limit int) ([]TopSpot, error) {
	if limit <= 0 {
		limit = defaultTopSpots
	}
	spots := []TopSpot{}
	err := spotSummaryTable(db).
		Select(spotSummaryColumns+
			", (SELECT COUNT(*) FROM bookings WHERE bookings.spot_id = spots.id AND "+activeBookingSQL+") AS booking_count",
			types.BOOKING_CANCELLED).
		Order("booking_count DESC, spots.id").
		Limit(limit).
		Scan(&spots).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("top booked spots", err)
	}
	return spots, nil
}

func SearchSpots(db *gorm.DB, q *types.SearchSpotsQuery) ([]SpotSummary, error) {
	if (q.StartDate == "") != (q.EndDate == "") {
		return nil, apperrors.NewValidationError("startDate and endDate must be given together")
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return nil, apperrors.NewValidationError("minPrice must not exceed maxPrice")
	}
	query := spotSummaryQuery(db)
	if q.City != "" {
		query = query.Where("LOWER(cities.name) = ?", strings.ToLower(q.City))
	}
	if q.Country != "" {
		query = query.Where("LOWER(countries.name) = ?", strings.ToLower(q.Country))
	}
	if q.Category != "" {
		query = query.Where("LOWER(categories.name) = ?", strings.ToLower(q.Category))
	}
	if q.Guests > 0 {
		query = query.Where("spots.capacity >= ?", q.Guests)
	}
	if q.MinPrice > 0 {
		query = query.Where("spots.price >= ?", q.MinPrice)
	}
	if q.MaxPrice > 0 {
		query = query.Where("spots.price <= ?", q.MaxPrice)
	}
	if q.StartDate != "" {
		start, err := utils.ParseDate(q.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		end, err := utils.ParseDate(q.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		query = query.
			Where("EXISTS (SELECT 1 FROM availabilities WHERE availabilities.spot_id = spots.id AND availabilities.start_date <= ? AND availabilities.end_date >= ?)", start, end).
			Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.spot_id = spots.id AND "+activeBookingSQL+" AND bookings.start_date < ? AND bookings.end_date > ?)",
				types.BOOKING_CANCELLED, end, start)
	}
	spots := []SpotSummary{}
	if err := query.Order("spots.price, spots.id").Scan(&spots).Error; err != nil {
		return nil, apperrors.NewInternalError("search spots", err)
	}
	return spots, nil
}

func activeBookingRanges(db *gorm.DB, spotID uint) ([]DateRange, error) {
	var bookings []models.Booking
	err := db.
		Select("start_date", "end_date").
		Where("bookings.spot_id = ?", spotID).
		Scopes(scopes.NotCancelled).
		Order("start_date").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	ranges := make([]DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, newDateRange(b.StartDate, b.EndDate))
	}
	return ranges, nil
}

func spotWindow(db *gorm.DB, spotID uint) (*DateRange, error) {
	var windows []models.Availability
	if err := db.Where("spot_id = ?", spotID).Limit(1).Find(&windows).Error; err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}
	r := newDateRange(windows[0].StartDate, windows[0].EndDate)
	return &r, nil
}

// GetSpotDetails loads the spot with its links. Bookings that were
// cancelled are left out.
func GetSpotDetails(db *gorm.DB, spotID uint) (*SpotDetails, error) {
	var details SpotDetails
	err := db.Where("id = ?", spotID).First(&details.Spot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("spot not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("load spot", err)
	}

	var categories []models.Category
	err = db.
		Joins("JOIN spot_spot_categories ON spot_spot_categories.category_id = categories.id").
		Where("spot_spot_categories.spot_id = ?", spotID).
		Limit(1).
		Find(&categories).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("load spot category", err)
	}
	if len(categories) > 0 {
		details.Category = &categories[0]
	}

	details.Amenities = []models.Amenity{}
	err = db.
		Joins("JOIN spot_amenities ON spot_amenities.amenity_id = amenities.id").
		Where("spot_amenities.spot_id = ?", spotID).
		Order("amenities.name").
		Find(&details.Amenities).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("load spot amenities", err)
	}

	details.Images = []string{}
	err = db.
		Table("media").
		Joins("JOIN spot_media ON spot_media.media_id = media.id").
		Where("spot_media.spot_id = ?", spotID).
		Order("spot_media.position").
		Pluck("media.url", &details.Images).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("load spot images", err)
	}

	details.Reviews = []ReviewView{}
	err = db.
		Table("reviews").
		Select("reviews.id, reviews.user_id, users.first_name, users.last_name, reviews.rating, reviews.comment, reviews.created_at").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.spot_id = ?", spotID).
		Order("reviews.created_at DESC").
		Scan(&details.Reviews).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("load spot reviews", err)
	}

	if details.Availability, err = spotWindow(db, spotID); err != nil {
		return nil, apperrors.NewInternalError("load spot availability", err)
	}
	if details.Bookings, err = activeBookingRanges(db, spotID); err != nil {
		return nil, apperrors.NewInternalError("load spot bookings", err)
	}
	return &details, nil
}

func GetSpotAvailability(db *gorm.DB, spotID uint) (*SpotAvailability, error) {
	if err := spotExists(db, spotID); err != nil {
		return nil, err
	}
	window, err := spotWindow(db, spotID)
	if err != nil {
		return nil, apperrors.NewInternalError("load availability", err)
	}
	booked, err := activeBookingRanges(db, spotID)
	if err != nil {
		return nil, apperrors.NewInternalError("load booked ranges", err)
	}
	return &SpotAvailability{SpotID: spotID, Availability: window, Booked: booked}, nil
}
