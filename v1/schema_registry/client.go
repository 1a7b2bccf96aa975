package schema_registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// contentType is the media type of the Confluent Schema Registry REST API.
const contentType = "application/vnd.schemaregistry.v1+json"

// Registry provides an interface for interacting with a Confluent Schema
// Registry. It is a single-attempt, fail-fast boundary: every method issues
// exactly one HTTP request and surfaces the mapped error. Retry policy
// belongs to callers.
type Registry interface {
	// FetchLatestSchema retrieves the latest registered version for a subject.
	FetchLatestSchema(ctx context.Context, subject string) (*Metadata, error)

	// FetchSchemaByID retrieves the schema definition for a schema id.
	FetchSchemaByID(ctx context.Context, id int) (string, error)

	// RegisterSchema registers a new schema version for a subject and
	// returns the id assigned by the registry.
	RegisterSchema(ctx context.Context, subject, schema string) (int, error)

	// CheckCompatibility checks a candidate schema against the latest
	// registered version for a subject.
	CheckCompatibility(ctx context.Context, subject, schema string) (bool, error)
}

// Metadata contains metadata about a registered schema version.
type Metadata struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
	Subject string `json:"subject"`
}

// Client is the default implementation of Registry that communicates with a
// Confluent Schema Registry over HTTP. It holds no schema state of its own;
// caching is the Cache's responsibility and coalescing the Serializer's.
type Client struct {
	url        string
	httpClient *http.Client

	// Authentication
	username string
	password string
}

// NewClient creates a new schema registry client.
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url: config.URL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		username: config.Username,
		password: config.Password,
	}, nil
}

// FetchLatestSchema retrieves the latest version of a schema for a subject.
//
// Error mapping:
//   - transport failure or timeout: ErrRegistryUnreachable
//   - 404 on the subject: ErrSubjectNotFound
//   - any other non-2xx status: ErrRegistryUnreachable
func (c *Client) FetchLatestSchema(ctx context.Context, subject string) (*Metadata, error) {
	url := fmt.Sprintf("%s/subjects/%s/versions/latest", c.url, subject)

	var metadata Metadata
	if err := c.getJSON(ctx, url, &metadata, ErrSubjectNotFound, "subject "+subject); err != nil {
		return nil, err
	}

	metadata.Subject = subject
	return &metadata, nil
}

// FetchSchemaByID retrieves a schema definition from the registry by its id.
//
// Error mapping:
//   - transport failure or timeout: ErrRegistryUnreachable
//   - 404 on the id: ErrSchemaIDNotFound
//   - any other non-2xx status: ErrRegistryUnreachable
func (c *Client) FetchSchemaByID(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/schemas/ids/%d", c.url, id)

	var result struct {
		Schema string `json:"schema"`
	}
	if err := c.getJSON(ctx, url, &result, ErrSchemaIDNotFound, fmt.Sprintf("schema id %d", id)); err != nil {
		return "", err
	}

	return result.Schema, nil
}

// RegisterSchema registers a new schema version with the registry and
// returns the assigned schema id. Registering a schema that is already
// registered for the subject returns the existing id.
func (c *Client) RegisterSchema(ctx context.Context, subject, schema string) (int, error) {
	url := fmt.Sprintf("%s/subjects/%s/versions", c.url, subject)

	var result struct {
		ID int `json:"id"`
	}
	if err := c.postJSON(ctx, url, map[string]interface{}{"schema": schema}, &result); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// CheckCompatibility checks whether a candidate schema is compatible with
// the latest registered version for a subject, under the compatibility
// policy configured in the registry.
func (c *Client) CheckCompatibility(ctx context.Context, subject, schema string) (bool, error) {
	url := fmt.Sprintf("%s/compatibility/subjects/%s/versions/latest", c.url, subject)

	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}
	if err := c.postJSON(ctx, url, map[string]interface{}{"schema": schema}, &result); err != nil {
		return false, err
	}

	return result.IsCompatible, nil
}

// getJSON performs a GET request and decodes the response body into out.
// A 404 response maps to notFound; every other failure maps to
// ErrRegistryUnreachable.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error, what string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegistryUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		var regErr registryError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&regErr); decodeErr == nil && regErr.Message != "" {
			return fmt.Errorf("%w: %s: %s", notFound, what, regErr.Message)
		}
		return fmt.Errorf("%w: %s", notFound, what)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: registry returned status %d: %s", ErrRegistryUnreachable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrRegistryUnreachable, err)
	}

	return nil
}

// postJSON performs a POST request with a JSON body and decodes the response
// body into out.
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegistryUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: registry returned status %d: %s", ErrRegistryUnreachable, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrRegistryUnreachable, err)
	}

	return nil
}
