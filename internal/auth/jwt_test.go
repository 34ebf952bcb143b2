package auth_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/examhub/internal/auth"
)

const testSecret = "a-long-and-sufficiently-random-test-secret"
const testUserID = "user-123"
const testRole = "ADMIN"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() should panic when JWT_SECRET is empty")
			}
		}()

		auth.Init()
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, 5*time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed unexpectedly: %v", err)
		}

		if claims.UserID != testUserID {
			t.Errorf("wrong UserID. want %s, got %s", testUserID, claims.UserID)
		}
		if claims.Role != testRole {
			t.Errorf("wrong Role. want %s, got %s", testRole, claims.Role)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if err == nil {
			t.Fatal("ValidateJWT should fail for an expired token")
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("wrong error for expired token. want %v, got %v", jwt.ErrTokenExpired, err)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "a-completely-different-signing-secret")
		auth.Init()
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()

		_, err = auth.ValidateJWT(tokenStr)
		if err == nil {
			t.Fatal("ValidateJWT should fail for a token signed with another key")
		}
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("wrong error for invalid signature: %v", err)
		}
	})

	t.Run("RefreshTokenIsNotAccessToken", func(t *testing.T) {
		refresh, err := auth.GenerateRefreshJWT(testUserID, time.Minute)
		if err != nil {
			t.Fatalf("GenerateRefreshJWT failed: %v", err)
		}

		if _, err := auth.ValidateJWT(refresh); !errors.Is(err, auth.ErrWrongTokenType) {
			t.Errorf("refresh token accepted as access token, err = %v", err)
		}
		claims, err := auth.ValidateRefreshJWT(refresh)
		if err != nil {
			t.Fatalf("ValidateRefreshJWT failed: %v", err)
		}
		if claims.UserID != testUserID {
			t.Errorf("wrong UserID in refresh token: %s", claims.UserID)
		}
	})
}
