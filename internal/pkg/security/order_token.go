package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// OrderTokenClaims identify the order a buyer returns from PayU with.
type OrderTokenClaims struct {
	OrderID    string `json:"order_id"`
	ExtOrderID string `json:"ext_order_id"`
	ExpiresAt  int64  `json:"exp"`
}

func GenerateOrderToken(orderID, extOrderID string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required for token generation")
	}
	if orderID == "" {
		return "", errors.New("order id is required for token generation")
	}
	claims := OrderTokenClaims{
		OrderID:    orderID,
		ExtOrderID: extOrderID,
		ExpiresAt:  time.Now().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	sig := mac.Sum(nil)
	token := fmt.Sprintf("%s.%s", base64.RawURLEncoding.EncodeToString(payload), base64.RawURLEncoding.EncodeToString(sig))
	return token, nil
}

func VerifyOrderToken(token, secret string) (*OrderTokenClaims, error) {
	if secret == "" {
		return nil, errors.New("secret is required for token verification")
	}
	payloadPart, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return nil, errors.New("invalid token format")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return nil, errors.New("invalid payload encoding")
	}
	sigBytes, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, errors.New("invalid signature encoding")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payloadBytes)
	if !hmac.Equal(sigBytes, mac.Sum(nil)) {
		return nil, errors.New("invalid token signature")
	}
	var claims OrderTokenClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, errors.New("invalid payload")
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
