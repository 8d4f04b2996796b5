package payu

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"
)

// SignatureHeader is the header PayU signs notifications with.
const SignatureHeader = "OpenPayu-Signature"

// ParseSignatureHeader splits a header like
// "sender=checkout;signature=abc;algorithm=MD5;content=DOCUMENT" into its parts.
func ParseSignatureHeader(header string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return out
}

// VerifyNotificationSignature checks the signature header against the digest
// of body concatenated with the second key.
func VerifyNotificationSignature(body []byte, signatureHeader, secondKey string) bool {
	key := strings.TrimSpace(secondKey)
	if key == "" {
		return false
	}
	parts := ParseSignatureHeader(signatureHeader)
	sig := strings.ToLower(parts["signature"])
	if sig == "" {
		return false
	}
	if _, err := hex.DecodeString(sig); err != nil {
		return false
	}

	var h hash.Hash
	switch strings.ToUpper(parts["algorithm"]) {
	case "", "MD5":
		h = md5.New()
	case "SHA-256", "SHA256":
		h = sha256.New()
	default:
		return false
	}
	h.Write(body)
	h.Write([]byte(key))
	expected := hex.EncodeToString(h.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(sig)) == 1
}
