package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usof-platform/usof-backend/internal/config"
)

const (
	purposeVerifyEmail   = "verify-email"
	purposePasswordReset = "password-reset"

	// verification and reset links expire quickly
	purposeTokenTTL = 5 * time.Minute
)

var ErrWrongTokenPurpose = errors.New("token was issued for a different purpose")

type Claims struct {
	UserID uint   `json:"user_id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PurposeClaims are used for short-lived email verification and
// password reset tokens.
type PurposeClaims struct {
	UserID  uint   `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, login string, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Login:  login,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.AppConfig.JWT.ExpireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "usof",
			Subject:   login,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWT.SecretKey))
}

// ParseToken validates a session token taken from the Authorization
// header; a "Bearer " prefix is stripped if present.
func ParseToken(tokenString string) (*Claims, error) {
	tokenString = StripBearerPrefix(tokenString)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func StripBearerPrefix(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// GenerateVerificationToken issues a short-lived token embedded in the
// email verification link.
func GenerateVerificationToken(userID uint) (string, error) {
	return generatePurposeToken(PurposeClaims{UserID: userID, Purpose: purposeVerifyEmail})
}

// ParseVerificationToken returns the user ID a verification token was
// issued for.
func ParseVerificationToken(tokenString string) (uint, error) {
	claims, err := parsePurposeToken(tokenString, purposeVerifyEmail)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// GenerateResetToken issues a short-lived token embedded in the
// password reset link.
func GenerateResetToken(email string) (string, error) {
	return generatePurposeToken(PurposeClaims{Email: email, Purpose: purposePasswordReset})
}

// ParseResetToken returns the email a reset token was issued for.
func ParseResetToken(tokenString string) (string, error) {
	claims, err := parsePurposeToken(tokenString, purposePasswordReset)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

func generatePurposeToken(claims PurposeClaims) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(purposeTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "usof",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWT.SecretKey))
}

func parsePurposeToken(tokenString, purpose string) (*PurposeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PurposeClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*PurposeClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongTokenPurpose
	}

	return claims, nil
}
