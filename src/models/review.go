package models

import (
	"staybook/src/types"
	"time"
)

type Review struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	UserID  uint   `gorm:"uniqueIndex:idx_review_user_spot;not null" json:"userId"`
	SpotID  uint   `gorm:"uniqueIndex:idx_review_user_spot;index;not null" json:"spotId"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	types.Timestamps
}

// Favorite exists while the user has the spot favorited.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	SpotID    uint      `gorm:"primaryKey;autoIncrement:false" json:"spotId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
