// Package schema_registry provides schema-governed serialization backed by a
// Confluent Schema Registry.
//
// It contains the four pieces of the serialization layer and composes them:
//
//   - Client: single-attempt HTTP client for the registry REST API
//   - Cache: concurrent in-memory store of resolved schemas
//   - Frame/Unframe: the Confluent wire-format envelope codec
//   - Serializer: encode/decode pipeline over Avro payloads
//
// Basic Usage:
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:     "http://localhost:8081",
//	    Timeout: 10 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//
//	serializer := schema_registry.NewSerializer(registry, schema_registry.SerializerConfig{})
//
//	record := schema_registry.UserRegistration{
//	    UserID:    "u1",
//	    Email:     "a@b.com",
//	    Password:  "x",
//	    CreatedAt: 1700000000,
//	}
//
//	// encoded is [magic_byte][schema_id][avro payload]
//	encoded, err := serializer.Encode(ctx, schema_registry.Subject("UserRegistration"), record)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := serializer.Decode(ctx, encoded)
//	if err != nil {
//	    return err
//	}
//	user := decoded.Value.(schema_registry.UserRegistration)
//
// Wire Format:
//
// All messages use the Confluent wire format:
//
//	[magic_byte (1 byte)] [schema_id (4 bytes, big-endian)] [payload]
//
// The magic byte is always 0x0. The layout is bit-exact for interoperability
// with any other producer or consumer sharing the same registry.
//
// Schema Resolution:
//
// Encode resolves the subject's latest schema through the cache, falling
// back to the registry on a miss; decode resolves the writer's schema from
// the id embedded in the message. Decode never requires the reader to supply
// an expected schema, so the registry's compatibility guarantees carry
// through unchanged. Concurrent resolutions of the same unresolved subject
// or id are coalesced into a single registry fetch.
//
// Record Types:
//
// Decoded values are typed: the package ships UserRegistration, Order, and
// SensorData, and RegisterRecordType extends the set. Messages whose record
// name has no registered type decode into map[string]interface{}.
//
// Using with FX:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{URL: os.Getenv("SCHEMA_REGISTRY_URL")}
//	        },
//	    ),
//	)
package schema_registry
