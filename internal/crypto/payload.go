package crypto

import (
	"fmt"
	"strings"
)

const payloadSeparator = "."

// EncryptedPayload is the output of [KeyChainService.Encrypt]: base64
// ciphertext and base64 IV.
type EncryptedPayload struct {
	Ciphertext string
	IV         string
}

// String returns the wire encoding of p.
func (p EncryptedPayload) String() string {
	return EncodeEncryptedPayload(p.Ciphertext, p.IV)
}

// EncodeEncryptedPayload joins ciphertext and iv into the wire form
// "<ciphertext>.<iv>". Standard base64 never contains a dot.
func EncodeEncryptedPayload(ciphertext, iv string) string {
	return ciphertext + payloadSeparator + iv
}

// DecodeEncryptedPayload splits the wire form produced by
// [EncodeEncryptedPayload]. It fails with [ErrMalformedPayload] unless s has
// exactly two non-empty parts.
func DecodeEncryptedPayload(s string) (ciphertext, iv string, err error) {
	parts := strings.Split(s, payloadSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected 2 non-empty parts, got %q", ErrMalformedPayload, s)
	}

	return parts[0], parts[1], nil
}
