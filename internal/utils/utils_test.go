package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rp 185.000", FormatPrice(185000))
	assert.Equal(t, "Rp 0", FormatPrice(0))
	assert.Equal(t, "Rp 1.250.000", FormatPrice(1250000))
	assert.Equal(t, "-Rp 25.000", FormatPrice(-25000))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, time.October, 16, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "16 Oktober 2026", FormatDate(ts))
	assert.Equal(t, "16 Oktober 2026, 14.05", FormatDateTime(ts))
}

func TestGenerateOrderID(t *testing.T) {
	now := time.UnixMilli(1760623500000)

	a, err := GenerateOrderID(now)
	require.NoError(t, err)
	b, err := GenerateOrderID(now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "ORD-1760623500000-"))
	assert.Len(t, a, len("ORD-1760623500000-")+6)
	assert.NotEqual(t, a, b)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "081234567890", DigitsOnly("+0812-3456 (7890)"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestIsBasicEmail(t *testing.T) {
	assert.True(t, IsBasicEmail("sari@florist.id"))
	assert.True(t, IsBasicEmail(" sari@florist.id "))
	assert.False(t, IsBasicEmail("not-an-email"))
	assert.False(t, IsBasicEmail("sari@florist"))
	assert.False(t, IsBasicEmail("sa ri@florist.id"))
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(PaginationParams{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = PageBounds(PaginationParams{Page: 5, Limit: 10}, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	SetSessionSecret("test-secret")
	sessionID := NewSessionID()

	token, err := GenerateSessionToken(sessionID, 1)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)

	SetSessionSecret("other-secret")
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

type sampleForm struct {
	Name  string `json:"name" validate:"required_trimmed"`
	Phone string `json:"phone" validate:"required_trimmed,phone_digits"`
	Email string `json:"email" validate:"required_trimmed,basic_email"`
}

func TestValidateStructCustomTags(t *testing.T) {
	err := ValidateStruct(sampleForm{Name: "  ", Phone: "0812-345", Email: "x@y.id"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "required_trimmed", errs[0].Tag)
	assert.Equal(t, "phone", errs[1].Field)
	assert.Equal(t, "phone_digits", errs[1].Tag)

	assert.NoError(t, ValidateStruct(sampleForm{Name: "Sari", Phone: "0812 3456 7890", Email: "x@y.id"}))
}

func TestMustRegisterValidationPanicsOnBadTag(t *testing.T) {
	assert.Panics(t, func() {
		MustRegisterValidation("", func(validator.FieldLevel) bool { return true })
	})
	assert.NotPanics(t, func() {
		MustRegisterValidation("always_ok", func(validator.FieldLevel) bool { return true })
	})
}
