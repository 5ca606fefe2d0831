package helpers

import "testing"

func TestGenerateResetToken(t *testing.T) {
	raw, hash, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("raw and hash must be non-empty")
	}
	if raw == hash {
		t.Error("stored hash must differ from the raw token")
	}
	if HashResetToken(raw) != hash {
		t.Error("re-hashing the raw token must reproduce the stored hash")
	}
}

func TestGenerateResetTokenUnique(t *testing.T) {
	a, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	b, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	if a == b {
		t.Error("two generated tokens should not collide")
	}
}
