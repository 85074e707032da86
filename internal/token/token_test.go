package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTest(t *testing.T, claims Claims) string {
	t.Helper()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestDecode(t *testing.T) {
	raw := signTest(t, Claims{UserID: "42", Role: "JOB_SEEKER"})

	id, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id.UserID != "42" {
		t.Errorf("expected user id 42, got %s", id.UserID)
	}
	if id.Role != RoleJobSeeker {
		t.Errorf("expected JOB_SEEKER, got %s", id.Role)
	}
}

func TestDecodeTrimsRole(t *testing.T) {
	raw := signTest(t, Claims{UserID: "7", Role: "  EMPLOYER \n"})

	id, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id.Role != RoleEmployer {
		t.Errorf("expected trimmed EMPLOYER, got %q", id.Role)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeMissingUserID(t *testing.T) {
	raw := signTest(t, Claims{Role: "ADMIN"})

	if _, err := Decode(raw); !errors.Is(err, ErrNoUserID) {
		t.Errorf("expected ErrNoUserID, got %v", err)
	}
}
