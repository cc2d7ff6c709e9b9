package credential

import (
	"strings"
	"testing"
)

func TestVault_SealOpen(t *testing.T) {
	vault, err := NewVault()
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	testCases := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"simple api key", "sk-1234567890abcdef"},
		{"long key", strings.Repeat("a", 1000)},
		{"special chars", "key!@#$%^&*()_+-=[]{}|;':\",./<>?"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := vault.Seal(tc.plaintext)
			if err != nil {
				t.Fatalf("seal failed: %v", err)
			}

			if tc.plaintext == "" {
				if sealed != "" {
					t.Errorf("empty string should not be sealed, got: %s", sealed)
				}
				return
			}

			if !strings.HasPrefix(sealed, EncryptedPrefix) {
				t.Errorf("sealed value should have prefix, got: %s", sealed)
			}
			if sealed == tc.plaintext {
				t.Error("sealed value should differ from plaintext")
			}

			opened, err := vault.Open(sealed)
			if err != nil {
				t.Fatalf("open failed: %v", err)
			}
			if opened != tc.plaintext {
				t.Errorf("opened value mismatch: got %q, want %q", opened, tc.plaintext)
			}
		})
	}
}

func TestVault_OpenPlaintext(t *testing.T) {
	vault, err := NewVault()
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	// Keys stored before encryption existed pass through unchanged.
	plaintext := "sk-not-encrypted"
	result, err := vault.Open(plaintext)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if result != plaintext {
		t.Errorf("plaintext should pass through unchanged: got %q, want %q", result, plaintext)
	}
}

func TestVault_OpenInvalid(t *testing.T) {
	vault, err := NewVault()
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	testCases := []struct {
		name  string
		input string
	}{
		{"invalid base64", EncryptedPrefix + "not-valid-base64!!!"},
		{"too short", EncryptedPrefix + "YWJj"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := vault.Open(tc.input); err == nil {
				t.Error("expected error for invalid input")
			}
		})
	}
}

func TestIsSecretKey(t *testing.T) {
	testCases := []struct {
		key      string
		expected bool
	}{
		{"openai.api_key", true},
		{"gemini.api_key", true},
		{"agent.url", false},
		{"model", false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			if got := IsSecretKey(tc.key); got != tc.expected {
				t.Errorf("IsSecretKey(%q) = %v, want %v", tc.key, got, tc.expected)
			}
		})
	}
}

func TestMask(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", "****"},
		{"short", "****"},
		{"12345678", "****"},
		{"123456789", "1234...6789"},
		{"sk-1234567890abcdef", "sk-1...cdef"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Mask(tc.input); got != tc.expected {
				t.Errorf("Mask(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestVault_DifferentNonces(t *testing.T) {
	vault, err := NewVault()
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	plaintext := "test-api-key"
	enc1, _ := vault.Seal(plaintext)
	enc2, _ := vault.Seal(plaintext)

	if enc1 == enc2 {
		t.Error("same plaintext should produce different ciphertext")
	}

	dec1, _ := vault.Open(enc1)
	dec2, _ := vault.Open(enc2)
	if dec1 != plaintext || dec2 != plaintext {
		t.Error("both should open to original plaintext")
	}
}
