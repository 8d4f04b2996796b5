package payu

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignatureHeader(t *testing.T) {
	got := ParseSignatureHeader("sender=checkout; signature=ABC;algorithm=MD5;content=DOCUMENT;junk")
	assert.Equal(t, "checkout", got["sender"])
	assert.Equal(t, "ABC", got["signature"])
	assert.Equal(t, "MD5", got["algorithm"])
	assert.Equal(t, "DOCUMENT", got["content"])
	assert.Len(t, got, 4)
}

func TestVerifyNotificationSignature(t *testing.T) {
	body := []byte(`{"order":{"orderId":"ORD1","status":"COMPLETED"}}`)
	key := "second-key"

	md5Sum := md5.Sum(append(append([]byte{}, body...), key...))
	md5Sig := hex.EncodeToString(md5Sum[:])
	shaSum := sha256.Sum256(append(append([]byte{}, body...), key...))
	shaSig := hex.EncodeToString(shaSum[:])

	tests := []struct {
		name   string
		header string
		key    string
		want   bool
	}{
		{"md5", "sender=checkout;signature=" + md5Sig + ";algorithm=MD5;content=DOCUMENT", key, true},
		{"sha-256", "sender=checkout;signature=" + shaSig + ";algorithm=SHA-256;content=DOCUMENT", key, true},
		{"sha256 alias", "signature=" + shaSig + ";algorithm=SHA256", key, true},
		{"missing algorithm defaults to md5", "signature=" + md5Sig, key, true},
		{"wrong algorithm", "signature=" + md5Sig + ";algorithm=SHA-256", key, false},
		{"unknown algorithm", "signature=" + md5Sig + ";algorithm=SHA-1", key, false},
		{"wrong key", "signature=" + md5Sig + ";algorithm=MD5", "other", false},
		{"empty key", "signature=" + md5Sig + ";algorithm=MD5", "", false},
		{"not hex", "signature=zz;algorithm=MD5", key, false},
		{"empty header", "", key, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyNotificationSignature(body, tt.header, tt.key))
		})
	}
}
