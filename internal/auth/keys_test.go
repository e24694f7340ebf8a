package auth

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(a, "hp_") {
		t.Errorf("key %q missing prefix", a)
	}
	if a == b {
		t.Error("two generated keys must differ")
	}
}

func TestKeyringPlaintext(t *testing.T) {
	k := NewKeyring([]string{"sk_test_123456789"}, nil)

	if !k.Verify("sk_test_123456789") {
		t.Error("expected allow-listed key to verify")
	}
	if k.Verify("sk_test_000000000") {
		t.Error("unknown key must not verify")
	}
	if k.Verify("") {
		t.Error("empty key must not verify")
	}
}

func TestKeyringHashed(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashKey(key)
	if err != nil {
		t.Fatal(err)
	}

	k := NewKeyring(nil, []string{hash})
	if !k.Verify(key) {
		t.Error("expected hashed key to verify")
	}
	if k.Verify(key + "x") {
		t.Error("altered key must not verify")
	}
}

func TestKeyringEmpty(t *testing.T) {
	if !NewKeyring(nil, nil).Empty() {
		t.Error("keyring with no entries must report empty")
	}
	if NewKeyring([]string{"k"}, nil).Empty() {
		t.Error("keyring with entries must not report empty")
	}
}
