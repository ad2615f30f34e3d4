package models

import (
	"staybook/src/types"
)

type Notification struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"userId"`
	Type    string `gorm:"type:varchar(32)" json:"type"`
	Message string `gorm:"type:text;not null" json:"message"`
	Read    bool   `gorm:"index" json:"read"`

	types.Timestamps
}
