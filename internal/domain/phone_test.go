package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone_PrependsCountryCode(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("9876543210", "91"))
}

func TestNormalizePhone_KeepsExistingCountryCode(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("919876543210", "91"))
}

func TestNormalizePhone_StripsLeadingZeros(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("09876543210", "91"))
	assert.Equal(t, "919876543210", NormalizePhone("009876543210", "91"))
}

func TestNormalizePhone_StripsFormattingCharacters(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("+91 98765-43210", "91"))
	assert.Equal(t, "919876543210", NormalizePhone("(91) 98765 43210", "91"))
}

func TestNormalizePhone_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizePhone("", "91"))
	assert.Empty(t, NormalizePhone("000", "91"))
	assert.Empty(t, NormalizePhone("abc", "91"))
}

func TestNormalizePhone_NoCountryCodeConfigured(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("09876543210", ""))
}
