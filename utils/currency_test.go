package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0", FormatPrice(0))
	assert.Equal(t, "$950", FormatPrice(950))
	assert.Equal(t, "$1,250,000", FormatPrice(1250000))
	assert.Equal(t, "$1,001", FormatPrice(1000.6))
}
