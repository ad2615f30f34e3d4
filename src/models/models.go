package models

// All lists every table in dependency order for migrations and schema export.
func All() []any {
	return []any{
		&User{},
		&Owner{},
		&Country{},
		&City{},
		&Category{},
		&Amenity{},
		&Spot{},
		&SpotSpotCategory{},
		&SpotAmenity{},
		&Media{},
		&SpotMedia{},
		&Availability{},
		&Payment{},
		&Promotion{},
		&GiftCard{},
		&GiftCardPurchase{},
		&Booking{},
		&Cancellation{},
		&Notification{},
		&Review{},
		&Favorite{},
		&ContactMessage{},
	}
}
