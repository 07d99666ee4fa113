package commands

import (
	"testing"

	"worksite/backend/internal/auth"
	"worksite/backend/internal/repository/postgres/worker"
)

func TestGenTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	claims := worker.AuthClaims{ID: 42, NationalID: "30123456", Role: auth.RoleSupervisor}

	accessToken, refreshToken, err := GenToken(claims, secret)
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}

	accessClaims, refreshClaims, err := VerifyTokens(accessToken, refreshToken, secret)
	if err != nil {
		t.Fatalf("VerifyTokens() error = %v", err)
	}

	if accessClaims.UserId != 42 || accessClaims.Role != auth.RoleSupervisor {
		t.Errorf("access claims = %+v", accessClaims)
	}
	if accessClaims.Type != auth.TokenAccess {
		t.Errorf("access token type = %q", accessClaims.Type)
	}
	if refreshClaims.Type != auth.TokenRefresh {
		t.Errorf("refresh token type = %q", refreshClaims.Type)
	}
}

func TestVerifyTokensWrongSecret(t *testing.T) {
	claims := worker.AuthClaims{ID: 1, NationalID: "1", Role: auth.RoleWorker}

	accessToken, refreshToken, err := GenToken(claims, "secret-a")
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}

	if _, _, err = VerifyTokens(accessToken, refreshToken, "secret-b"); err == nil {
		t.Fatal("VerifyTokens() with wrong secret succeeded")
	}
}

func TestVerifyTokensPairMismatch(t *testing.T) {
	secret := "test-secret"

	accessA, _, err := GenToken(worker.AuthClaims{ID: 1, Role: auth.RoleWorker}, secret)
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}
	_, refreshB, err := GenToken(worker.AuthClaims{ID: 2, Role: auth.RoleWorker}, secret)
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}

	if _, _, err = VerifyTokens(accessA, refreshB, secret); err == nil {
		t.Fatal("VerifyTokens() accepted a mismatched pair")
	}
}

func TestValidateTokenRejectsRefresh(t *testing.T) {
	secret := "test-secret"
	a := auth.New(secret)

	accessToken, refreshToken, err := GenToken(worker.AuthClaims{ID: 5, Role: auth.RoleAdmin}, secret)
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}

	if _, err = a.ValidateToken(accessToken); err != nil {
		t.Errorf("ValidateToken(access) error = %v", err)
	}
	if _, err = a.ValidateToken(refreshToken); err == nil {
		t.Error("ValidateToken(refresh) succeeded, want error")
	}
}
