package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}
