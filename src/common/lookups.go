package common

import (
	"staybook/src/apperrors"
	"staybook/src/models"

	"gorm.io/gorm"
)

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	out := []models.Category{}
	if err := db.Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.NewInternalError("list categories", err)
	}
	return out, nil
}

func ListAmenities(db *gorm.DB) ([]models.Amenity, error) {
	out := []models.Amenity{}
	if err := db.Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.NewInternalError("list amenities", err)
	}
	return out, nil
}

func ListCountries(db *gorm.DB) ([]models.Country, error) {
	out := []models.Country{}
	if err := db.Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.NewInternalError("list countries", err)
	}
	return out, nil
}

// ListCities narrows to one country when countryID is set.
func ListCities(db *gorm.DB, countryID uint) ([]models.City, error) {
	out := []models.City{}
	q := db.Order("name")
	if countryID > 0 {
		q = q.Where("country_id = ?", countryID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, apperrors.NewInternalError("list cities", err)
	}
	return out, nil
}
