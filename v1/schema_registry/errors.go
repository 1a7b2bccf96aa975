package schema_registry

import (
	"errors"
)

// Error taxonomy for the schema registry and serialization layer.
// These sentinels abstract away transport and codec details so callers can
// branch on errors.Is without inspecting HTTP status codes or Avro internals.
var (
	// ErrRegistryUnreachable is returned when the registry cannot be
	// reached or answers with an unexpected status.
	ErrRegistryUnreachable = errors.New("schema registry unreachable")

	// ErrSubjectNotFound is returned when a subject has no registered version.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrSchemaIDNotFound is returned when a schema id is unknown to the registry.
	ErrSchemaIDNotFound = errors.New("schema id not found")

	// ErrInvalidEnvelope is returned when a message does not carry a valid
	// wire-format envelope (too short, or wrong magic byte).
	ErrInvalidEnvelope = errors.New("invalid wire envelope")

	// ErrUnknownSchema is returned on decode when the embedded schema id
	// cannot be resolved to a definition.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrSchemaResolution is returned on encode when the subject cannot be
	// resolved to a schema id and definition.
	ErrSchemaResolution = errors.New("schema resolution failed")

	// ErrSerializationMismatch is returned on encode when a record does not
	// conform to the resolved schema.
	ErrSerializationMismatch = errors.New("record does not match schema")

	// ErrDeserialization is returned on decode when a payload does not
	// parse against the writer's schema.
	ErrDeserialization = errors.New("payload does not parse against schema")
)

// registryError carries the Confluent REST error body.
// Known error codes: 40401 subject not found, 40402 version not found,
// 40403 schema not found.
type registryError struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

// IsNotFound reports whether err indicates a missing subject or schema id,
// as opposed to a transport or registry failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSubjectNotFound) || errors.Is(err, ErrSchemaIDNotFound)
}
