package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1234, "PLN", "12.34 PLN"},
		{100, "PLN", "1.00 PLN"},
		{5, "", "0.05"},
		{-5, "", "-0.05"},
		{0, "EUR", "0.00 EUR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinorUnits(tt.amount, tt.currency))
	}
}

func TestPaymentTransaction_OrderIDString(t *testing.T) {
	id := "ORD1"
	assert.Equal(t, "ORD1", PaymentTransaction{OrderID: &id}.OrderIDString())
	assert.Equal(t, "", PaymentTransaction{}.OrderIDString())
	assert.Equal(t, "0.50 PLN", PaymentTransaction{Amount: 50, Currency: "PLN"}.FormattedAmount())
}

func TestPayUSettings_Normalize(t *testing.T) {
	s := PayUSettings{PosID: " 1 ", ClientSecret: "\tsecret\n", AppBaseURL: " https://shop.example/// "}
	s.Normalize()
	assert.Equal(t, "1", s.PosID)
	assert.Equal(t, "secret", s.ClientSecret)
	assert.Equal(t, "https://shop.example", s.AppBaseURL)

	empty := PayUSettings{}
	empty.Normalize()
	assert.Equal(t, DefaultAppBaseURL, empty.AppBaseURL)
	assert.False(t, empty.Configured())
}

func TestPayUSettings_Validate(t *testing.T) {
	ok := PayUSettings{PosID: "145227", ClientSecret: "s", AppBaseURL: "https://shop.example"}
	require.NoError(t, ok.Validate())
	assert.True(t, ok.Configured())

	bad := PayUSettings{AppBaseURL: "not a url"}
	assert.Error(t, bad.Validate())

	onlyPos := PayUSettings{PosID: "145227"}
	assert.False(t, onlyPos.Configured())
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("hunter2", "not-a-hash"))
}
