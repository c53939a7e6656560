package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("Almacen#2025")
	if err != nil {
		t.Fatal(err)
	}

	// Hashes are stored as strings on the user model; the byte output
	// must survive that conversion and still verify.
	stored := string(hashed)
	if err := ComparePassword(stored, "Almacen#2025"); err != nil {
		t.Errorf("stored hash did not verify: %v", err)
	}
	if err := ComparePassword(stored, "wrong-password"); err == nil {
		t.Error("wrong password must not verify")
	}
}
