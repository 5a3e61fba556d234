package pkg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedWriter(t *testing.T) {
	var b1, b2 bytes.Buffer
	cw := NewCombinedWriter(&b1, &b2)

	n, err := cw.Write([]byte("ola"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "ola", b1.String())
	assert.Equal(t, "ola", b2.String())
}
