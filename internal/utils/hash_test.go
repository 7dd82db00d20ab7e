// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

const testHashKey = "test-secret-key"

func TestHashString_MatchesHMAC(t *testing.T) {
	h := hmac.New(sha256.New, []byte(testHashKey))
	h.Write([]byte("s3cret-password"))
	expected := hex.EncodeToString(h.Sum(nil))

	if got := HashString("s3cret-password", testHashKey); got != expected {
		t.Fatalf("unexpected hash value\nwant: %s\ngot:  %s", expected, got)
	}
}

func TestHashString_Deterministic(t *testing.T) {
	a := HashString("password", testHashKey)
	b := HashString("password", testHashKey)
	if a != b {
		t.Fatal("hash must be deterministic for the same input")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}

func TestHashString_DifferentKeys(t *testing.T) {
	if HashString("password", "key-1") == HashString("password", "key-2") {
		t.Fatal("different keys must produce different hashes")
	}
}

func TestHashString_DifferentInputs(t *testing.T) {
	if HashString("password-1", testHashKey) == HashString("password-2", testHashKey) {
		t.Fatal("different inputs must produce different hashes")
	}
}

func TestMatchesHash(t *testing.T) {
	stored := HashString("correct horse", testHashKey)

	if !MatchesHash("correct horse", testHashKey, stored) {
		t.Error("same password must match")
	}
	if MatchesHash("battery staple", testHashKey, stored) {
		t.Error("other password must not match")
	}
	if MatchesHash("correct horse", "other-key", stored) {
		t.Error("other key must not match")
	}
	if MatchesHash("correct horse", testHashKey, "") {
		t.Error("empty stored hash must not match")
	}
}
