package models

import (
	"staybook/src/types"
	"time"
)

type Spot struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	OwnerID     uint    `gorm:"index;not null" json:"ownerId"`
	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"index" json:"slug"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	CityID      uint    `gorm:"index;not null" json:"cityId"`
	CountryID   uint    `gorm:"index;not null" json:"countryId"`
	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Capacity    int     `gorm:"not null" json:"capacity"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	types.Timestamps
}

// SpotSpotCategory links a spot to its single category.
type SpotSpotCategory struct {
	SpotID     uint `gorm:"primaryKey;autoIncrement:false" json:"spotId"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false" json:"categoryId"`
}

type SpotAmenity struct {
	SpotID    uint `gorm:"primaryKey;autoIncrement:false" json:"spotId"`
	AmenityID uint `gorm:"primaryKey;autoIncrement:false" json:"amenityId"`
}

type Media struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	URL  string `gorm:"not null" json:"url"`
	Type string `json:"type"`
}

func (Media) TableName() string {
	return "media"
}

type SpotMedia struct {
	SpotID   uint `gorm:"primaryKey;autoIncrement:false" json:"spotId"`
	MediaID  uint `gorm:"primaryKey;autoIncrement:false" json:"mediaId"`
	Position int  `json:"position"`
}

func (SpotMedia) TableName() string {
	return "spot_media"
}

// Availability is the bookable window of a spot.
type Availability struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SpotID    uint      `gorm:"uniqueIndex;not null" json:"spotId"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
}
