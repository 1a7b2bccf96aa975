package schema_registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClientRequiresURL verifies that construction fails without a
// registry URL.
func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

// TestFetchLatestSchema verifies the happy path against a fake registry.
func TestFetchLatestSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/subjects/UserRegistration-value/versions/latest", r.URL.Path)

		json.NewEncoder(w).Encode(Metadata{
			ID:      17,
			Version: 3,
			Schema:  UserRegistrationSchema,
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	meta, err := client.FetchLatestSchema(context.Background(), "UserRegistration-value")
	require.NoError(t, err)
	assert.Equal(t, 17, meta.ID)
	assert.Equal(t, 3, meta.Version)
	assert.Equal(t, "UserRegistration-value", meta.Subject)
	assert.Equal(t, UserRegistrationSchema, meta.Schema)
}

// TestFetchLatestSchemaNotFound verifies that a 404 with a Confluent error
// body maps to ErrSubjectNotFound, not to a transport error.
func TestFetchLatestSchemaNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(registryError{
			ErrorCode: 40401,
			Message:   "Subject 'ghost-value' not found.",
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchLatestSchema(context.Background(), "ghost-value")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
	assert.NotErrorIs(t, err, ErrRegistryUnreachable)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Subject 'ghost-value' not found.")
}

// TestFetchSchemaByID verifies schema retrieval by id.
func TestFetchSchemaByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schemas/ids/9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"schema": SensorDataSchema})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	schema, err := client.FetchSchemaByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, SensorDataSchema, schema)
}

// TestFetchSchemaByIDNotFound verifies the 404 mapping for unknown ids.
func TestFetchSchemaByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(registryError{ErrorCode: 40403, Message: "Schema not found"})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchSchemaByID(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaIDNotFound)
	assert.True(t, IsNotFound(err))
}

// TestClientUnreachable verifies that transport failures map to
// ErrRegistryUnreachable.
func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchLatestSchema(context.Background(), "UserRegistration-value")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryUnreachable)
	assert.False(t, IsNotFound(err))
}

// TestClientServerError verifies that a 5xx answer maps to
// ErrRegistryUnreachable rather than a not-found sentinel.
func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "registry on fire", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchSchemaByID(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryUnreachable)
}

// TestRegisterSchema verifies registration returns the assigned id and sends
// basic auth when configured.
func TestRegisterSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/subjects/SensorData-value/versions", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "svc", user)
		assert.Equal(t, "secret", pass)

		var body struct {
			Schema string `json:"schema"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, SensorDataSchema, body.Schema)

		json.NewEncoder(w).Encode(map[string]int{"id": 23})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Username: "svc", Password: "secret"})
	require.NoError(t, err)

	id, err := client.RegisterSchema(context.Background(), "SensorData-value", SensorDataSchema)
	require.NoError(t, err)
	assert.Equal(t, 23, id)
}

// TestCheckCompatibility verifies the compatibility check result mapping.
func TestCheckCompatibility(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compatibility/subjects/Order-value/versions/latest", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"is_compatible": false})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	compatible, err := client.CheckCompatibility(context.Background(), "Order-value", OrderSchema)
	require.NoError(t, err)
	assert.False(t, compatible)
}
