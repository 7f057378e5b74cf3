package util

import "testing"

func TestValidatePassphrase(t *testing.T) {
	cases := []struct {
		name  string
		pass  string
		valid bool
	}{
		{"too short", "abc12", false},
		{"no digit", "Password", false},
		{"no upper", "pass1234", false},
		{"no letter", "12345678", false},
		{"valid", "Pass1234", true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassphrase(tc.pass)
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got error %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected error for %q", tc.pass)
			}
		})
	}
}

func TestHashAndVerifyPassphrase(t *testing.T) {
	hash, err := HashPassphrase("Pass1234")
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	if !VerifyPassphrase("Pass1234", hash) {
		t.Fatalf("expected passphrase to verify")
	}
	if VerifyPassphrase("Pass12345", hash) {
		t.Fatalf("expected wrong passphrase to fail")
	}
	other, err := HashPassphrase("Pass1234")
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	if other == hash {
		t.Fatalf("expected salted hashes to differ")
	}
}

func TestVerifyPassphraseMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "argon2id$only", "bcrypt$a$b", "argon2id$!!$??"} {
		if VerifyPassphrase("Pass1234", encoded) {
			t.Fatalf("expected %q to be rejected", encoded)
		}
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	a := DeriveKey("secret", salt)
	b := DeriveKey("secret", salt)
	if len(a) != 32 || string(a) != string(b) {
		t.Fatalf("expected deterministic 32-byte key")
	}
}
