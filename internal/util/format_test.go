package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "12.345", FormatCount(12345))
	assert.Equal(t, "1.234.567", FormatCount(1234567))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "12,50", FormatDecimal(12.5, 2))
	assert.Equal(t, "1.234,6", FormatDecimal(1234.56, 1))
}

func TestFormatOptional(t *testing.T) {
	v := 0.745
	assert.Equal(t, "-", FormatOptional(nil, 2))
	assert.Equal(t, "0,745", FormatOptional(&v, 3))
}
