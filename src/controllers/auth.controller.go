package controllers

import (
	"errors"
	"net/http"
	"staybook/src/apperrors"
	"staybook/src/config"
	"staybook/src/lib"
	"staybook/src/models"
	"staybook/src/types"
	"staybook/src/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func AuthSignup(ctx *gin.Context, db *gorm.DB) (*models.User, int, error) {
	var body types.SignupRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, apperrors.NewValidationError(err.Error())
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("count users", err)
	}
	if count > 0 {
		return nil, http.StatusConflict, apperrors.NewConflictError("email is already registered")
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("hash password", err)
	}
	user := models.User{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       email,
		Password:    hash,
		PhoneNumber: body.PhoneNumber,
		Address:     body.Address,
	}
	if body.DateOfBirth != "" {
		dob, err := utils.ParseDate(body.DateOfBirth)
		if err != nil {
			return nil, http.StatusBadRequest, apperrors.NewValidationError(err.Error())
		}
		user.DateOfBirth = &dob
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, http.StatusConflict, apperrors.NewConflictError("email is already registered")
		}
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("insert user", err)
	}
	log.Info().Uint("user_id", user.ID).Msg("User signed up")
	return &user, http.StatusCreated, nil
}

// AuthLogin answers 404 for an unknown email and 401 for a wrong password.
func AuthLogin(ctx *gin.Context, db *gorm.DB, cfg config.JWTConfig) (*LoginResult, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, apperrors.NewValidationError(err.Error())
	}
	var user models.User
	err := db.
		Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).
		First(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, http.StatusNotFound, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("load user", err)
	}
	if !utils.CheckPassword(user.Password, body.Password) {
		log.Warn().Uint("user_id", user.ID).Str("ip", ctx.ClientIP()).Msg("Invalid password")
		return nil, http.StatusUnauthorized, apperrors.NewUnauthorizedError("invalid credentials")
	}
	token, claims, err := utils.GenerateToken(cfg.Secret, cfg.TTL, &user)
	if err != nil {
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("sign token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: &user}, http.StatusOK, nil
}

// AuthLogout revokes the presented token until it would have expired.
func AuthLogout(ctx *gin.Context, denylist lib.TokenDenylist) (int, error) {
	claims, ok := ctx.Value("claims").(*types.Claims)
	if !ok {
		return http.StatusUnauthorized, apperrors.NewUnauthorizedError("missing token")
	}
	if denylist == nil {
		return http.StatusServiceUnavailable, apperrors.NewUnavailableError("logout is not available")
	}
	if claims.ExpiresAt == nil {
		return http.StatusOK, nil
	}
	if err := denylist.Revoke(ctx.Request.Context(), claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return http.StatusInternalServerError, apperrors.NewInternalError("revoke token", err)
	}
	return http.StatusOK, nil
}
