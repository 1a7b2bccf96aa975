package schema_registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFrameLayout verifies the exact byte layout of the wire envelope.
func TestFrameLayout(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	message := Frame(42, payload)

	require.Len(t, message, 5+len(payload))
	assert.Equal(t, MagicByte, message[0])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x2a}, message[1:5])
	assert.Equal(t, payload, message[5:])
}

// TestFrameEmptyPayload verifies that a zero-length payload still produces a
// valid 5-byte envelope.
func TestFrameEmptyPayload(t *testing.T) {
	message := Frame(7, nil)

	require.Len(t, message, 5)

	id, payload, err := Unframe(message)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Empty(t, payload)
}

// TestFrameUnframeRoundTrip verifies that Unframe recovers exactly what
// Frame encoded, including large schema ids.
func TestFrameUnframeRoundTrip(t *testing.T) {
	for _, schemaID := range []int{0, 1, 100001, 1<<31 - 1} {
		payload := []byte("avro bytes")
		message := Frame(schemaID, payload)

		id, got, err := Unframe(message)
		require.NoError(t, err)
		assert.Equal(t, schemaID, id)
		assert.Equal(t, payload, got)
	}
}

// TestUnframeTooShort verifies that inputs shorter than the envelope are
// rejected with ErrInvalidEnvelope.
func TestUnframeTooShort(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {0x0}, {0x0, 0x0, 0x0, 0x1}} {
		_, _, err := Unframe(data)
		assert.True(t, errors.Is(err, ErrInvalidEnvelope), "expected ErrInvalidEnvelope for %v, got %v", data, err)
	}
}

// TestUnframeWrongMagicByte verifies that a non-zero first byte is rejected
// with ErrInvalidEnvelope.
func TestUnframeWrongMagicByte(t *testing.T) {
	_, _, err := Unframe([]byte{0x1, 0x0, 0x0, 0x0, 0x2a, 0xff})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEnvelope))
}
