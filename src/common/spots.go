package common

import (
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/models/scopes"
	"staybook/src/types"
	"staybook/src/utils"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultAvailabilityWindow = 365 * 24 * time.Hour

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func countExisting(tx *gorm.DB, model any, ids []uint) (int64, error) {
	var n int64
	err := tx.Model(model).Scopes(scopes.WithIDs(ids...)).Count(&n).Error
	return n, err
}

// validateSpotReferences makes sure every id the payload points at exists.
func validateSpotReferences(tx *gorm.DB, body *types.SpotRequestBody) error {
	checks := []struct {
		model any
		ids   []uint
		name  string
	}{
		{&models.Category{}, []uint{body.CategoryID}, "categoryId"},
		{&models.City{}, []uint{body.CityID}, "cityId"},
		{&models.Country{}, []uint{body.CountryID}, "countryId"},
		{&models.Amenity{}, uniqueIDs(body.AmenityIDs), "amenityIds"},
	}
	for _, c := range checks {
		if len(c.ids) == 0 {
			continue
		}
		n, err := countExisting(tx, c.model, c.ids)
		if err != nil {
			return apperrors.NewInternalError("validate "+c.name, err)
		}
		if n != int64(len(c.ids)) {
			return apperrors.NewValidationError("invalid " + c.name)
		}
	}
	return nil
}

func availabilityWindow(body *types.SpotRequestBody) (time.Time, time.Time, error) {
	if body.AvailableFrom == "" && body.AvailableTo == "" {
		start := utils.Today()
		return start, start.Add(defaultAvailabilityWindow), nil
	}
	if body.AvailableFrom == "" || body.AvailableTo == "" {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("availableFrom and availableTo must be given together")
	}
	start, err := utils.ParseDate(body.AvailableFrom)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError(err.Error())
	}
	end, err := utils.ParseDate(body.AvailableTo)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError(err.Error())
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("availableTo must be after availableFrom")
	}
	return start, end, nil
}

func writeSpotLinks(tx *gorm.DB, spotID uint, body *types.SpotRequestBody) error {
	if err := tx.Create(&models.SpotSpotCategory{SpotID: spotID, CategoryID: body.CategoryID}).Error; err != nil {
		return apperrors.NewInternalError("link category", err)
	}
	amenityIDs := uniqueIDs(body.AmenityIDs)
	if len(amenityIDs) > 0 {
		links := make([]models.SpotAmenity, 0, len(amenityIDs))
		for _, id := range amenityIDs {
			links = append(links, models.SpotAmenity{SpotID: spotID, AmenityID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return apperrors.NewInternalError("link amenities", err)
		}
	}
	if len(body.Images) > 0 {
		media := make([]models.Media, 0, len(body.Images))
		for _, url := range body.Images {
			media = append(media, models.Media{URL: url, Type: "image"})
		}
		if err := tx.Create(&media).Error; err != nil {
			return apperrors.NewInternalError("insert media", err)
		}
		links := make([]models.SpotMedia, 0, len(media))
		for i, m := range media {
			links = append(links, models.SpotMedia{SpotID: spotID, MediaID: m.ID, Position: i})
		}
		if err := tx.Create(&links).Error; err != nil {
			return apperrors.NewInternalError("link media", err)
		}
	}
	return nil
}

func deleteSpotMedia(tx *gorm.DB, spotID uint) error {
	var mediaIDs []uint
	if err := tx.Model(&models.SpotMedia{}).Where("spot_id = ?", spotID).Pluck("media_id", &mediaIDs).Error; err != nil {
		return apperrors.NewInternalError("load spot media", err)
	}
	if err := tx.Where("spot_id = ?", spotID).Delete(&models.SpotMedia{}).Error; err != nil {
		return apperrors.NewInternalError("unlink media", err)
	}
	if len(mediaIDs) > 0 {
		if err := tx.Scopes(scopes.WithIDs(mediaIDs...)).Delete(&models.Media{}).Error; err != nil {
			return apperrors.NewInternalError("delete media", err)
		}
	}
	return nil
}

func deleteSpotLinks(tx *gorm.DB, spotID uint) error {
	if err := tx.Where("spot_id = ?", spotID).Delete(&models.SpotSpotCategory{}).Error; err != nil {
		return apperrors.NewInternalError("unlink category", err)
	}
	if err := tx.Where("spot_id = ?", spotID).Delete(&models.SpotAmenity{}).Error; err != nil {
		return apperrors.NewInternalError("unlink amenities", err)
	}
	return deleteSpotMedia(tx, spotID)
}

// AddSpot creates the spot with its category, amenities, media and
// availability window in one transaction.
func AddSpot(db *gorm.DB, userID uint, body *types.SpotRequestBody) (*models.Spot, error) {
	start, end, err := availabilityWindow(body)
	if err != nil {
		return nil, err
	}
	var spot models.Spot
	err = db.Transaction(func(tx *gorm.DB) error {
		owner, err := GetOwnerByUser(tx, userID)
		if err != nil {
			return err
		}
		if err := validateSpotReferences(tx, body); err != nil {
			return err
		}
		spot = models.Spot{
			OwnerID:     owner.ID,
			Title:       body.Title,
			Slug:        slug.Make(body.Title),
			Description: body.Description,
			Address:     body.Address,
			CityID:      body.CityID,
			CountryID:   body.CountryID,
			Price:       utils.Round2(body.Price),
			Capacity:    body.Capacity,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
		}
		if err := tx.Create(&spot).Error; err != nil {
			return apperrors.NewInternalError("insert spot", err)
		}
		if err := writeSpotLinks(tx, spot.ID, body); err != nil {
			return err
		}
		availability := models.Availability{SpotID: spot.ID, StartDate: start, EndDate: end}
		if err := tx.Create(&availability).Error; err != nil {
			return apperrors.NewInternalError("insert availability", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("spot_id", spot.ID).Uint("user_id", userID).Msg("Spot created")
	return &spot, nil
}

// UpdateSpot replaces the spot row and all of its links. The availability
// window only changes when both bounds are supplied.
func UpdateSpot(db *gorm.DB, userID, spotID uint, body *types.SpotRequestBody) error {
	var start, end time.Time
	windowGiven := body.AvailableFrom != "" || body.AvailableTo != ""
	if windowGiven {
		var err error
		if start, end, err = availabilityWindow(body); err != nil {
			return err
		}
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeSpotOwner(tx, userID, spotID); err != nil {
			return err
		}
		if err := validateSpotReferences(tx, body); err != nil {
			return err
		}
		err := tx.
			Model(&models.Spot{ID: spotID}).
			Updates(map[string]any{
				"title":       body.Title,
				"slug":        slug.Make(body.Title),
				"description": body.Description,
				"address":     body.Address,
				"city_id":     body.CityID,
				"country_id":  body.CountryID,
				"price":       utils.Round2(body.Price),
				"capacity":    body.Capacity,
				"latitude":    body.Latitude,
				"longitude":   body.Longitude,
			}).
			Error
		if err != nil {
			return apperrors.NewInternalError("update spot", err)
		}
		if err := deleteSpotLinks(tx, spotID); err != nil {
			return err
		}
		if err := writeSpotLinks(tx, spotID, body); err != nil {
			return err
		}
		if windowGiven {
			err := tx.
				Model(&models.Availability{}).
				Where("spot_id = ?", spotID).
				Updates(map[string]any{"start_date": start, "end_date": end}).
				Error
			if err != nil {
				return apperrors.NewInternalError("update availability", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("spot_id", spotID).Uint("user_id", userID).Msg("Spot updated")
	return nil
}

// DeleteSpot removes the spot and everything hanging off it, bookings and
// their payments included.
func DeleteSpot(db *gorm.DB, userID, spotID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeSpotOwner(tx, userID, spotID); err != nil {
			return err
		}
		var bookings []models.Booking
		if err := tx.Select("id", "payment_id").Where("spot_id = ?", spotID).Find(&bookings).Error; err != nil {
			return apperrors.NewInternalError("load spot bookings", err)
		}
		if len(bookings) > 0 {
			bookingIDs := make([]uint, 0, len(bookings))
			paymentIDs := make([]uint, 0, len(bookings))
			for _, b := range bookings {
				bookingIDs = append(bookingIDs, b.ID)
				if b.PaymentID != nil {
					paymentIDs = append(paymentIDs, *b.PaymentID)
				}
			}
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Cancellation{}).Error; err != nil {
				return apperrors.NewInternalError("delete cancellations", err)
			}
			if err := tx.Where("spot_id = ?", spotID).Delete(&models.Booking{}).Error; err != nil {
				return apperrors.NewInternalError("delete bookings", err)
			}
			if len(paymentIDs) > 0 {
				if err := tx.Where("id IN ?", paymentIDs).Delete(&models.Payment{}).Error; err != nil {
					return apperrors.NewInternalError("delete payments", err)
				}
			}
		}
		if err := tx.Where("spot_id = ?", spotID).Delete(&models.Availability{}).Error; err != nil {
			return apperrors.NewInternalError("delete availability", err)
		}
		if err := deleteSpotLinks(tx, spotID); err != nil {
			return err
		}
		if err := tx.Where("spot_id = ?", spotID).Delete(&models.Review{}).Error; err != nil {
			return apperrors.NewInternalError("delete reviews", err)
		}
		if err := tx.Where("spot_id = ?", spotID).Delete(&models.Favorite{}).Error; err != nil {
			return apperrors.NewInternalError("delete favorites", err)
		}
		if err := tx.Delete(&models.Spot{}, spotID).Error; err != nil {
			return apperrors.NewInternalError("delete spot", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("spot_id", spotID).Uint("user_id", userID).Msg("Spot deleted")
	return nil
}
