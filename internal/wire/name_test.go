package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, name := range []string{
		"www.example.com",
		"a.b.c.d.example.org",
		"single",
		"",
	} {
		encoded, err := EncodeName(name)
		require.NoError(t, err)

		decoded, next, err := DecodeName(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, name, decoded)
		assert.Equal(t, len(encoded), next)
	}
}

func TestEncodeEmptyNameIsSingleZeroOctet(t *testing.T) {
	buf, err := EncodeName("")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, buf)
}

func TestEncodeRejectsOverlongLabel(t *testing.T) {
	label := make([]byte, 64)
	for i := range label {
		label[i] = 'a'
	}
	_, err := EncodeName(string(label) + ".com")
	assert.Error(t, err)
}

func TestDecodeFollowsPointer(t *testing.T) {
	// "example.com" spelled at offset 0, then a name at offset 13 that is
	// just a pointer back to it.
	base, err := EncodeName("example.com")
	require.NoError(t, err)

	msg := append([]byte{}, base...)
	pointerOffset := len(msg)
	msg = append(msg, 0xC0, 0x00) // pointer to offset 0

	direct, _, err := DecodeName(msg, 0)
	require.NoError(t, err)

	viaPointer, next, err := DecodeName(msg, pointerOffset)
	require.NoError(t, err)

	assert.Equal(t, direct, viaPointer)
	assert.Equal(t, pointerOffset+2, next, "cursor lands past the two-octet pointer, not past the jump target")
}

func TestDecodeRejectsForwardPointer(t *testing.T) {
	msg := []byte{0xC0, 0x05, 0, 0, 0, 0}
	_, _, err := DecodeName(msg, 0)
	assert.ErrorIs(t, err, ErrMalformedName)
}

func TestDecodeRejectsPointerCycle(t *testing.T) {
	// Two pointers that point at each other.
	msg := []byte{
		0xC0, 0x02, // offset 0: pointer -> offset 2
		0xC0, 0x00, // offset 2: pointer -> offset 0
	}
	_, _, err := DecodeName(msg, 2)
	assert.ErrorIs(t, err, ErrMalformedName)
}

func TestDecodeRejectsOffsetPastMessage(t *testing.T) {
	msg := []byte{3, 'w', 'w'}
	_, _, err := DecodeName(msg, 0)
	assert.ErrorIs(t, err, ErrMalformedName)
}

func TestDecodeRejectsOverlongLabelLength(t *testing.T) {
	msg := make([]byte, 2)
	msg[0] = 64 // length 64 > maxLabelLength sets the reserved 01 high bits, so it is rejected
	_, _, err := DecodeName(msg, 0)
	assert.ErrorIs(t, err, ErrMalformedName)
}
