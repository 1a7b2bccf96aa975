package schema_registry

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hamba/avro/v2"
	"golang.org/x/sync/singleflight"

	"github.com/fluxfeed/streaming/v1/observability"
)

// Serializer composes the registry client, the schema cache, the wire codec,
// and the Avro payload codec into encode and decode operations.
//
// Decode always uses the writer's schema, resolved from the id embedded in
// the message; callers never supply an expected schema. Schema evolution is
// the registry's responsibility, this service is a mechanical
// resolve-then-(de)serialize pipeline.
//
// Concurrent callers resolving the same unresolved subject or id are
// coalesced into a single registry fetch; the in-flight marker is released
// on success, failure, and timeout alike.
type Serializer struct {
	registry Registry
	cache    *Cache
	cfg      SerializerConfig

	// group deduplicates concurrent registry fetches per subject and per id
	group singleflight.Group

	// observer provides optional observability hooks for encode/decode
	observer observability.Observer

	// logger is the optional structured logger
	logger Logger
}

// NewSerializer creates a Serializer on top of a registry client.
// The serializer owns its schema cache; use Cache to reach it for explicit
// invalidation.
func NewSerializer(registry Registry, cfg SerializerConfig) *Serializer {
	return &Serializer{
		registry: registry,
		cache:    NewCache(),
		cfg:      cfg,
	}
}

// WithObserver attaches an observer for encode/decode telemetry.
// Returns the serializer for method chaining.
func (s *Serializer) WithObserver(observer observability.Observer) *Serializer {
	s.observer = observer
	return s
}

// WithLogger attaches a structured logger.
// Returns the serializer for method chaining.
func (s *Serializer) WithLogger(logger Logger) *Serializer {
	s.logger = logger
	return s
}

// Cache returns the serializer's schema cache, e.g. to invalidate a
// subject's cached latest id after registering a new schema version.
func (s *Serializer) Cache() *Cache {
	return s.cache
}

// Encode resolves the subject's latest schema, serializes the record against
// it, and frames the payload in the wire format.
//
// Failures:
//   - ErrSchemaResolution wrapping the registry/cache failure
//   - ErrSerializationMismatch when the record does not conform to the schema
func (s *Serializer) Encode(ctx context.Context, subject string, record interface{}) ([]byte, error) {
	start := time.Now()

	id, schema, err := s.resolveSubject(ctx, subject)
	if err != nil {
		err = fmt.Errorf("%w: subject %q: %w", ErrSchemaResolution, subject, err)
		s.observeOperation("encode", subject, "", time.Since(start), err, 0)
		return nil, err
	}

	payload, err := avro.Marshal(schema, record)
	if err != nil {
		err = fmt.Errorf("%w: subject %q: %v", ErrSerializationMismatch, subject, err)
		s.observeOperation("encode", subject, recordName(schema), time.Since(start), err, 0)
		return nil, err
	}

	message := Frame(id, payload)
	s.observeOperation("encode", subject, recordName(schema), time.Since(start), nil, int64(len(message)))
	return message, nil
}

// Decode unframes a wire-format message, resolves the writer's schema by the
// embedded id, and deserializes the payload against it.
//
// Failures:
//   - ErrInvalidEnvelope, propagated from the wire codec
//   - ErrUnknownSchema when the id cannot be resolved
//   - ErrDeserialization when the payload does not parse against the schema
func (s *Serializer) Decode(ctx context.Context, data []byte) (*DecodedRecord, error) {
	start := time.Now()

	id, payload, err := Unframe(data)
	if err != nil {
		s.observeOperation("decode", "", "", time.Since(start), err, int64(len(data)))
		return nil, err
	}

	schema, err := s.resolveID(ctx, id)
	if err != nil {
		err = fmt.Errorf("%w: schema id %d: %w", ErrUnknownSchema, id, err)
		s.observeOperation("decode", fmt.Sprintf("%d", id), "", time.Since(start), err, int64(len(data)))
		return nil, err
	}

	name := recordName(schema)
	var value interface{}

	if target, ok := newRecordValue(name); ok {
		if err := avro.Unmarshal(schema, payload, target); err != nil {
			err = fmt.Errorf("%w: record %s: %v", ErrDeserialization, name, err)
			s.observeOperation("decode", fmt.Sprintf("%d", id), name, time.Since(start), err, int64(len(data)))
			return nil, err
		}
		value = reflect.ValueOf(target).Elem().Interface()
	} else {
		// No Go type registered for this record name. Decode generically so
		// consumers still observe valid records from unknown producers.
		generic := map[string]interface{}{}
		if err := avro.Unmarshal(schema, payload, &generic); err != nil {
			err = fmt.Errorf("%w: record %s: %v", ErrDeserialization, name, err)
			s.observeOperation("decode", fmt.Sprintf("%d", id), name, time.Since(start), err, int64(len(data)))
			return nil, err
		}
		value = generic
	}

	s.observeOperation("decode", fmt.Sprintf("%d", id), name, time.Since(start), nil, int64(len(data)))
	return &DecodedRecord{
		SchemaID: id,
		Name:     name,
		Value:    value,
	}, nil
}

// resolveSubject returns the latest schema id and parsed definition for a
// subject, consulting the cache first unless AlwaysFetchLatest is set.
// Concurrent resolutions of the same subject share one registry fetch.
func (s *Serializer) resolveSubject(ctx context.Context, subject string) (int, avro.Schema, error) {
	if !s.cfg.AlwaysFetchLatest {
		if id, schema, ok := s.cache.LatestBySubject(subject); ok {
			return id, schema, nil
		}
	}

	type latest struct {
		id     int
		schema avro.Schema
	}

	v, err, _ := s.group.Do("subject:"+subject, func() (interface{}, error) {
		meta, err := s.registry.FetchLatestSchema(ctx, subject)
		if err != nil {
			return nil, err
		}

		schema, err := avro.Parse(meta.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema for subject %q: %v", subject, err)
		}

		s.cache.Put(meta.ID, schema)
		s.cache.PutLatest(subject, meta.ID)

		if s.logger != nil {
			s.logger.InfoWithContext(ctx, "Resolved latest schema", nil, map[string]interface{}{
				"subject":   subject,
				"schema_id": meta.ID,
				"version":   meta.Version,
			})
		}
		return latest{id: meta.ID, schema: schema}, nil
	})
	if err != nil {
		return 0, nil, err
	}

	l := v.(latest)
	return l.id, l.schema, nil
}

// resolveID returns the parsed definition for a schema id, consulting the
// cache first. Concurrent resolutions of the same id share one registry
// fetch.
func (s *Serializer) resolveID(ctx context.Context, id int) (avro.Schema, error) {
	if schema, ok := s.cache.SchemaByID(id); ok {
		return schema, nil
	}

	v, err, _ := s.group.Do(fmt.Sprintf("id:%d", id), func() (interface{}, error) {
		raw, err := s.registry.FetchSchemaByID(ctx, id)
		if err != nil {
			return nil, err
		}

		schema, err := avro.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema for id %d: %v", id, err)
		}

		s.cache.Put(id, schema)
		return schema, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(avro.Schema), nil
}

// recordName returns the full name of a record schema, falling back to the
// schema's type name for non-named schemas.
func recordName(schema avro.Schema) string {
	if named, ok := schema.(avro.NamedSchema); ok {
		return named.FullName()
	}
	return string(schema.Type())
}
