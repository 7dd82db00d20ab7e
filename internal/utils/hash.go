package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the hex-encoded HMAC-SHA256 of data under hashKey.
// Stored account passwords are kept in this form.
func HashString(data string, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// MatchesHash reports whether data hashes to stored under hashKey. The
// comparison takes constant time.
func MatchesHash(data, hashKey, stored string) bool {
	return hmac.Equal([]byte(HashString(data, hashKey)), []byte(stored))
}
