package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(7, "admin@estampaviva.com")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 7 || claims.Email != "admin@estampaviva.com" {
		t.Errorf("claims %+v", claims)
	}
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateJWT(7, "admin@estampaviva.com")
	if err != nil {
		t.Fatal(err)
	}

	SetJWTSecret("another-secret")
	if _, err := ValidateJWT(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}

	SetJWTSecret("test-secret")
	if _, err := ValidateJWT(token + "x"); err == nil {
		t.Error("corrupted token must be rejected")
	}
}
