package schema_registry

import (
	"reflect"
	"sync"
)

// Namespace is the Avro namespace of the record types shipped with this
// module.
const Namespace = "com.fluxfeed.streaming"

// Keyed is implemented by records that carry a natural partitioning key.
// The producer uses it to route all messages for one entity to the same
// partition; records without it fall back to broker-default partitioning.
type Keyed interface {
	PartitionKey() string
}

// DecodedRecord is the result of decoding a wire-format message: the writer's
// schema id, the Avro record full name, and the decoded value. Value holds a
// registered Go type when one exists for Name, otherwise map[string]interface{}.
type DecodedRecord struct {
	SchemaID int
	Name     string
	Value    interface{}
}

// UserRegistration is a new user signing up.
type UserRegistration struct {
	UserID    string  `avro:"userId"`
	Email     string  `avro:"email"`
	Password  string  `avro:"password"`
	CreatedAt int64   `avro:"createdAt"`
	Profile   *string `avro:"profile"`
}

// PartitionKey implements Keyed.
func (u UserRegistration) PartitionKey() string { return u.UserID }

// OrderItem is a single line of an Order.
type OrderItem struct {
	SKU      string  `avro:"sku"`
	Quantity int     `avro:"quantity"`
	Price    float64 `avro:"price"`
}

// Order is a placed customer order.
type Order struct {
	OrderID  string      `avro:"orderId"`
	UserID   string      `avro:"userId"`
	Items    []OrderItem `avro:"items"`
	Total    float64     `avro:"total"`
	Status   string      `avro:"status"`
	PlacedAt int64       `avro:"placedAt"`
}

// PartitionKey implements Keyed.
func (o Order) PartitionKey() string { return o.OrderID }

// SensorData is a single reading from a sensor.
type SensorData struct {
	SensorID   string  `avro:"sensorId"`
	Value      float64 `avro:"value"`
	Unit       string  `avro:"unit"`
	RecordedAt int64   `avro:"recordedAt"`
}

// PartitionKey implements Keyed.
func (s SensorData) PartitionKey() string { return s.SensorID }

// Canonical Avro schemas for the shipped record types. These are what a
// deployment registers under the matching "{recordName}-value" subjects.
const (
	UserRegistrationSchema = `{
		"type": "record",
		"name": "UserRegistration",
		"namespace": "com.fluxfeed.streaming",
		"fields": [
			{"name": "userId", "type": "string"},
			{"name": "email", "type": "string"},
			{"name": "password", "type": "string"},
			{"name": "createdAt", "type": "long"},
			{"name": "profile", "type": ["null", "string"], "default": null}
		]
	}`

	OrderSchema = `{
		"type": "record",
		"name": "Order",
		"namespace": "com.fluxfeed.streaming",
		"fields": [
			{"name": "orderId", "type": "string"},
			{"name": "userId", "type": "string"},
			{"name": "items", "type": {"type": "array", "items": {
				"type": "record",
				"name": "OrderItem",
				"namespace": "com.fluxfeed.streaming",
				"fields": [
					{"name": "sku", "type": "string"},
					{"name": "quantity", "type": "int"},
					{"name": "price", "type": "double"}
				]
			}}},
			{"name": "total", "type": "double"},
			{"name": "status", "type": {"type": "enum", "name": "OrderStatus",
				"namespace": "com.fluxfeed.streaming",
				"symbols": ["PENDING", "PAID", "SHIPPED", "CANCELLED"]}},
			{"name": "placedAt", "type": "long"}
		]
	}`

	SensorDataSchema = `{
		"type": "record",
		"name": "SensorData",
		"namespace": "com.fluxfeed.streaming",
		"fields": [
			{"name": "sensorId", "type": "string"},
			{"name": "value", "type": "double"},
			{"name": "unit", "type": "string"},
			{"name": "recordedAt", "type": "long"}
		]
	}`
)

// Subject returns the registry subject for a record name, following the
// "{recordName}-value" convention.
func Subject(recordName string) string {
	return recordName + "-value"
}

// recordTypes maps Avro record full names to the Go types they decode into.
var (
	recordTypesMu sync.RWMutex
	recordTypes   = map[string]reflect.Type{}
)

// RegisterRecordType associates an Avro record full name with a Go type.
// Decode instantiates a fresh value of that type for each message whose
// writer schema carries the name. Passing a pointer registers its element
// type. Registering the same name again replaces the previous type.
//
// The shipped record types are pre-registered; callers extend the closed set
// by registering their own:
//
//	schema_registry.RegisterRecordType("com.acme.Invoice", Invoice{})
func RegisterRecordType(fullName string, prototype interface{}) {
	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	recordTypesMu.Lock()
	recordTypes[fullName] = t
	recordTypesMu.Unlock()
}

// newRecordValue returns a pointer to a zero value of the type registered
// for fullName, or ok=false when the name is unregistered.
func newRecordValue(fullName string) (interface{}, bool) {
	recordTypesMu.RLock()
	t, ok := recordTypes[fullName]
	recordTypesMu.RUnlock()
	if !ok {
		return nil, false
	}
	return reflect.New(t).Interface(), true
}

func init() {
	RegisterRecordType(Namespace+".UserRegistration", UserRegistration{})
	RegisterRecordType(Namespace+".Order", Order{})
	RegisterRecordType(Namespace+".SensorData", SensorData{})
}
