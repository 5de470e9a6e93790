package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// testHasher uses the minimum bcrypt cost to keep the suite fast.
func testHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.MinCost}
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := testHasher()

	passwords := []string{
		"password123",
		"P@ssw0rd!#$%^&*()",
		"this-is-a-very-long-password-that-should-still-work-correctly",
		"密码123",
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", password, err)
		}
		if hash == password {
			t.Errorf("Hash(%q) returned the plaintext", password)
		}
		if !hasher.Verify(password, hash) {
			t.Errorf("Verify(%q) = false, want true", password)
		}
	}
}

func TestPasswordHasher_RejectsWrongPassword(t *testing.T) {
	hasher := testHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	for _, wrong := range []string{"", "wrong", "correct horse battery staple!", "CORRECT HORSE BATTERY STAPLE"} {
		if hasher.Verify(wrong, hash) {
			t.Errorf("Verify(%q) = true, want false", wrong)
		}
	}
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	hasher := testHasher()

	first, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, expected per-hash salt")
	}
	if !hasher.Verify("samepassword", first) || !hasher.Verify("samepassword", second) {
		t.Error("both salted hashes must verify")
	}
}

func TestNewPasswordHasher_CostFromEnv(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "4")
	if got := NewPasswordHasher().cost; got != 4 {
		t.Errorf("cost = %d, want 4", got)
	}

	// Out-of-range and garbage values fall back to the default.
	t.Setenv("AUTH_BCRYPT_COST", "99")
	if got := NewPasswordHasher().cost; got != defaultBcryptCost {
		t.Errorf("cost = %d, want default %d", got, defaultBcryptCost)
	}
	t.Setenv("AUTH_BCRYPT_COST", "cheap")
	if got := NewPasswordHasher().cost; got != defaultBcryptCost {
		t.Errorf("cost = %d, want default %d", got, defaultBcryptCost)
	}
}
