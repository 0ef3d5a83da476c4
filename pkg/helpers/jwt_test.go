package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "gym")
	tok, exp, err := m.Generate("u-1", "a@x.io")
	if err != nil {
		t.Fatalf("Generate() err=%v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("exp=%v is not in the future", exp)
	}
	c, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}
	if c.Subject != "u-1" || c.Email != "a@x.io" {
		t.Fatalf("claims=%+v", c)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "gym")

	other := NewTokenManager("other", time.Hour, "gym")
	forged, _, _ := other.Generate("u-1", "a@x.io")

	expired := NewTokenManager("secret", -time.Minute, "gym")
	old, _, _ := expired.Generate("u-1", "a@x.io")

	wrongIss := NewTokenManager("secret", time.Hour, "someone-else")
	foreign, _, _ := wrongIss.Generate("u-1", "a@x.io")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": forged,
		"expired":      old,
		"wrong issuer": foreign,
		"alg none":     unsigned,
	} {
		if _, err := m.Parse(tok); err == nil {
			t.Errorf("Parse(%s) accepted", name)
		}
	}
}
