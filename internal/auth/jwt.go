package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/examhub/internal/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	jwtSecret []byte

	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func Init() {
	secret := config.JWTSecret()
	if secret == "" {
		panic("JWT_SECRET must be set")
	}
	jwtSecret = []byte(secret)
}

func GenerateJWT(userID, role string, duration time.Duration) (string, error) {
	return sign(userID, role, TokenTypeAccess, duration)
}

func GenerateRefreshJWT(userID string, duration time.Duration) (string, error) {
	return sign(userID, "", TokenTypeRefresh, duration)
}

func sign(userID, role, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT parses an access token.
func ValidateJWT(tokenStr string) (*Claims, error) {
	return parse(tokenStr, TokenTypeAccess)
}

func ValidateRefreshJWT(tokenStr string) (*Claims, error) {
	return parse(tokenStr, TokenTypeRefresh)
}

func parse(tokenStr, tokenType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
