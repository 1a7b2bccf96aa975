package schema_registry

import (
	"context"

	"go.uber.org/fx"

	"github.com/fluxfeed/streaming/v1/logger"
	"github.com/fluxfeed/streaming/v1/observability"
)

// FXModule is an fx.Module that provides and configures the schema registry
// client and the serializer built on top of it.
//
// The module:
//  1. Provides the registry client factory function (as the Registry interface)
//  2. Provides the Serializer, wiring in the optional logger and observer
//  3. Invokes the lifecycle registration for startup/shutdown logging
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL:     os.Getenv("SCHEMA_REGISTRY_URL"),
//	                Timeout: 30 * time.Second,
//	            }
//	        },
//	        func() schema_registry.SerializerConfig {
//	            return schema_registry.SerializerConfig{}
//	        },
//	    ),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
		NewSerializerWithDI,
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// SchemaRegistryParams groups the dependencies needed to create a schema
// registry client.
type SchemaRegistryParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a new schema registry client using dependency
// injection. Dependencies are automatically provided via the
// SchemaRegistryParams struct, which embeds fx.In.
func NewClientWithDI(params SchemaRegistryParams) (Registry, error) {
	return NewClient(params.Config)
}

// SerializerParams groups the dependencies needed to create a Serializer.
type SerializerParams struct {
	fx.In

	Registry Registry
	Config   SerializerConfig       `optional:"true"`
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewSerializerWithDI creates a Serializer using dependency injection,
// attaching the optional logger and observer when they are present in the
// container.
func NewSerializerWithDI(params SerializerParams) *Serializer {
	serializer := NewSerializer(params.Registry, params.Config)

	if params.Logger != nil {
		serializer = serializer.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		serializer = serializer.WithObserver(params.Observer)
	}

	return serializer
}

// SchemaRegistryLifecycleParams groups the dependencies needed for schema
// registry lifecycle management.
type SchemaRegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
	Logger    *logger.Logger `optional:"true"`
}

// RegisterSchemaRegistryLifecycle registers the schema registry client with
// the fx lifecycle system. The HTTP client is stateless, so the hooks only
// record the lifecycle transitions; future cleanup logic belongs here.
func RegisterSchemaRegistryLifecycle(params SchemaRegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.InfoWithContext(ctx, "Schema Registry client initialized", nil, nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.InfoWithContext(ctx, "Schema Registry client shutdown", nil, nil)
			}
			return nil
		},
	})
}
