package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	// sha256("founder") - known digest
	assert.Equal(t,
		"59458508a0827cff5f80ed091ebd8808fbe67c97357b58ca00a278e7359dec20",
		HashPassword("founder"),
	)

	digest := HashPassword("sr")
	assert.Len(t, digest, 64)
	assert.True(t, CheckPasswordHash("sr", digest))
	assert.False(t, CheckPasswordHash("SR", digest))
	assert.False(t, CheckPasswordHash("sr", ""))
	assert.False(t, CheckPasswordHash("", digest))
}
