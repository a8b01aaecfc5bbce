package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipQRCode(t *testing.T) {
	assert.Equal(t, "https://estate.example/apartment/a1", OwnershipLink("https://estate.example/", "a1"))

	png, err := OwnershipQRCode("https://estate.example", "a1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
