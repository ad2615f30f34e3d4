package models

import (
	"staybook/src/types"
	"time"
)

type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	FirstName   string     `gorm:"not null" json:"firstName"`
	LastName    string     `gorm:"not null" json:"lastName"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Address     string     `json:"address,omitempty"`

	types.Timestamps
}

// Owner marks a User that may manage spots.
type Owner struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	types.Timestamps
}
