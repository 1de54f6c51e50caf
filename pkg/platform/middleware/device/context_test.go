package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	assert.Equal(t, "Chrome on Windows", DisplayName(chrome))
	assert.Equal(t, "Unknown device", DisplayName(""))
}
