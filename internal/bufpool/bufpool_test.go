package bufpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsCorrectLength(t *testing.T) {
	buf := Get()
	assert.Len(t, buf, ReceiveBufferSize)
}

func TestPutThenGetReturnsFullLengthBuffer(t *testing.T) {
	buf := Get()
	buf[0] = 0xAB
	Put(buf)

	reused := Get()
	assert.Len(t, reused, ReceiveBufferSize)
}

func TestPutIgnoresUndersizedBuffer(t *testing.T) {
	small := make([]byte, 16)
	assert.NotPanics(t, func() { Put(small) })
}
