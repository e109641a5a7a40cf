package object

import "testing"

func TestVerifyPreview(t *testing.T) {
	secret := []byte("test-secret")
	sig := SignPreview(secret, "cvs/u/1700000000-cafe.pdf", 1700000900)

	if !VerifyPreview(secret, "cvs/u/1700000000-cafe.pdf", 1700000900, sig) {
		t.Fatalf("expected signature to verify")
	}
	if VerifyPreview(secret, "cvs/u/1700000000-cafe.pdf", 1700009999, sig) {
		t.Fatalf("signature must be bound to the expiry")
	}
	if VerifyPreview(secret, "cvs/u/other.pdf", 1700000900, sig) {
		t.Fatalf("signature must be bound to the storage key")
	}
	if VerifyPreview([]byte("other-secret"), "cvs/u/1700000000-cafe.pdf", 1700000900, sig) {
		t.Fatalf("signature must be bound to the secret")
	}
}
