package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("rahasia-sekali")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	if !VerifyPassword("rahasia-sekali", hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("salah-total", hash) {
		t.Fatalf("did not expect wrong password to verify")
	}
}

func TestHashPasswordRejectsShortInput(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"", "   ", "pendek"} {
		if _, err := HashPassword(password); err == nil {
			t.Fatalf("expected error for password %q", password)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail(" Admin@BBI.co.id "); got != "admin@bbi.co.id" {
		t.Fatalf("unexpected normalized email: %q", got)
	}
}
