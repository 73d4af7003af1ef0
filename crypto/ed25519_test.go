package crypto

import (
	"bytes"
	"testing"
)

func TestPrivateKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivateKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	b, err := PrivateKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	if !a.PublicKey().Address().Equals(b.PublicKey().Address()) {
		t.Fatal("same seed must produce the same address")
	}
	if !bytes.Equal(a.Seed(), seed) {
		t.Fatal("seed not preserved")
	}

	if _, err := PrivateKeyFromSeed([]byte("short")); err == nil {
		t.Fatal("short seed must be rejected")
	}
}

func TestConditionFormat(t *testing.T) {
	pub := GenPrivateKey().PublicKey()
	cond := pub.Condition()
	if err := cond.Validate(); err != nil {
		t.Fatalf("invalid condition: %s", err)
	}
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse: %s", err)
	}
	if ext != ExtensionName || typ != "ed25519" || !bytes.Equal(data, pub) {
		t.Fatalf("unexpected condition: %s", cond)
	}
	if err := pub.Address().Validate(); err != nil {
		t.Fatalf("invalid address: %s", err)
	}
}

func TestSignVerify(t *testing.T) {
	priv := GenPrivateKey()
	msg := []byte("genesis")
	sig := priv.Sign(msg)
	if !priv.PublicKey().Verify(msg, sig) {
		t.Fatal("signature must verify")
	}
	if priv.PublicKey().Verify([]byte("other"), sig) {
		t.Fatal("signature must not verify other message")
	}
	other := GenPrivateKey().PublicKey()
	if other.Verify(msg, sig) {
		t.Fatal("signature must not verify with another key")
	}
}
