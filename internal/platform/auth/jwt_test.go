package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hamdukhub/internal/platform/config"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService(config.PortalConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})

	tokenString, err := svc.GenerateToken("usr_123", "client@hamdukhub.test", "business")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "usr_123" {
		t.Errorf("UserID = %q, want usr_123", claims.UserID)
	}
	if claims.Email != "client@hamdukhub.test" {
		t.Errorf("Email = %q, want client@hamdukhub.test", claims.Email)
	}
	if claims.Role != "business" {
		t.Errorf("Role = %q, want business", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewTokenService(config.PortalConfig{JWTSecret: "secret-a", TokenTTL: time.Hour})
	verifier := NewTokenService(config.PortalConfig{JWTSecret: "secret-b", TokenTTL: time.Hour})

	tokenString, err := issuer.GenerateToken("usr_123", "client@hamdukhub.test", "business")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(tokenString); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewTokenService(config.PortalConfig{JWTSecret: "test-secret"})

	claims := Claims{
		UserID: "usr_123",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr_123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "hamdukhub",
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	svc := NewTokenService(config.PortalConfig{JWTSecret: "test-secret"})

	// alg=none tokens must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "usr_123"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Error("expected validation to reject a token signed with none")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewTokenService(config.PortalConfig{JWTSecret: "test-secret"})
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("expected validation to fail for malformed input")
	}
}
