package schema_registry

import (
	"encoding/binary"
	"fmt"
)

// MagicByte is the first byte of every message in the Confluent wire format.
const MagicByte byte = 0x0

// headerSize is the fixed envelope length: magic byte plus 4-byte schema id.
const headerSize = 5

// Frame wraps a serialized payload in the Confluent wire format:
//
//	[magic_byte (1 byte)] [schema_id (4 bytes, big-endian)] [payload]
//
// The payload bytes are copied through unmodified. The layout is bit-exact
// with every other producer and consumer sharing the same registry.
func Frame(schemaID int, payload []byte) []byte {
	buf := make([]byte, headerSize+len(payload))
	buf[0] = MagicByte
	binary.BigEndian.PutUint32(buf[1:headerSize], uint32(schemaID))
	copy(buf[headerSize:], payload)
	return buf
}

// Unframe splits a wire-format message into its schema id and payload.
// It fails with ErrInvalidEnvelope if the input is shorter than 5 bytes or
// the first byte is not the magic value. The payload is returned verbatim;
// validation against the schema happens in the serializer, not here.
func Unframe(data []byte) (int, []byte, error) {
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("%w: expected at least %d bytes, got %d", ErrInvalidEnvelope, headerSize, len(data))
	}

	if data[0] != MagicByte {
		return 0, nil, fmt.Errorf("%w: expected magic byte 0x%x, got 0x%x", ErrInvalidEnvelope, MagicByte, data[0])
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:headerSize]))
	return schemaID, data[headerSize:], nil
}
