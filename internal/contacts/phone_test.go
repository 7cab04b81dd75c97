package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"local ten digits", "0501234567", "+966501234567", true},
		{"bare nine digits", "501234567", "+966501234567", true},
		{"international with spaces", "+966 50 123 4567", "+966501234567", true},
		{"double zero prefix", "00966501234567", "+966501234567", true},
		{"bare country code", "966501234567", "+966501234567", true},
		{"dashes and parens", "(050) 123-4567", "+966501234567", true},
		{"arabic indic digits", "٠٥٠١٢٣٤٥٦٧", "+966501234567", true},
		{"too short", "050123456", "", false},
		{"too long", "05012345678", "", false},
		{"landline", "0112345678", "", false},
		{"foreign", "+1 555 123 4567", "", false},
		{"empty", "", "", false},
		{"letters only", "call us", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	first, ok := NormalizePhone("0551112222")
	assert.True(t, ok)
	second, ok := NormalizePhone(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestFindPhones(t *testing.T) {
	text := "جوال: 050 123 4567 أو +966551112222 وهاتف 0112345678"
	assert.Equal(t, []string{"050 123 4567", "+966551112222"}, findPhones(text))
}

func TestPhoneFromWhatsApp(t *testing.T) {
	assert.Equal(t, "966551112222", phoneFromWhatsApp("https://wa.me/966551112222"))
	assert.Equal(t, "0551112222", phoneFromWhatsApp("https://api.whatsapp.com/send?phone=0551112222&text=hi"))
	assert.Empty(t, phoneFromWhatsApp("https://wa.me/"))
}
