package utils

import (
	"testing"

	"github.com/google/uuid"

	"team-scheduler-api/core/config"
)

func testJWTConfig(t *testing.T) {
	t.Helper()
	config.SetForTesting(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	})
	t.Cleanup(func() { config.SetForTesting(nil) })
}

func TestTokenRoundTrip(t *testing.T) {
	testJWTConfig(t)

	userID := uuid.New()
	token, err := GenerateToken(userID, "me@example.com")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "me@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	testJWTConfig(t)

	token, err := GenerateToken(uuid.New(), "me@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateAndParseToken(token + "x"); err == nil {
		t.Error("tampered signature accepted")
	}
	if _, err := ValidateAndParseToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	config.SetForTesting(&config.Config{})
	t.Cleanup(func() { config.SetForTesting(nil) })

	if _, err := GenerateToken(uuid.New(), "me@example.com"); err == nil {
		t.Error("token issued without a configured secret")
	}
}
