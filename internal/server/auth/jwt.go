// Package auth issues and verifies the signed access tokens returned at
// login.
package auth

import (
	"time"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account identity inside an HS256-signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	RegNo  string `json:"regNo"`
	Role   string `json:"role"`
}

// GenerateToken signs a new access token for the account.
func GenerateToken(userID, regNo, role string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		RegNo:  regNo,
		Role:   role,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
