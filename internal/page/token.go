package page

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenHeader = "X-Page-Token"

// Claims binds a token to one page session.
type Claims struct {
	PageID string `json:"pid"`
	jwt.RegisteredClaims
}

func IssueToken(secret []byte, pageID string, ttl time.Duration) (string, error) {
	claims := Claims{
		PageID: pageID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("empty token")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.PageID == "" {
		return "", errors.New("page id not found in token claims")
	}
	return claims.PageID, nil
}
