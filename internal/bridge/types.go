package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Credentials for the management bridge. Both fields are required when
// either is set; the bridge rejects blank usernames and passwords.
type Credentials struct {
	Username string
	Password string
}

// Reader is the part of the bridge client the probes depend on. Keeping it
// narrow makes collectors easy to unit-test against a stub.
type Reader interface {
	// ReadAttribute reads a single attribute of the named object.
	ReadAttribute(ctx context.Context, objectName, attribute string) (any, error)
	// ReadAttributes reads several attributes of the named object in one
	// round trip and returns them keyed by attribute name.
	ReadAttributes(ctx context.Context, objectName string, attributes ...string) (map[string]any, error)
}

// BridgeError is a non-OK response envelope from the management agent.
// Status follows HTTP semantics: 404 means the object or attribute does
// not exist on the target.
type BridgeError struct {
	Status     int
	Message    string
	ObjectName string
}

func (e *BridgeError) Error() string {
	if e.ObjectName != "" {
		return fmt.Sprintf("bridge error %d reading %s: %s", e.Status, e.ObjectName, e.Message)
	}
	return fmt.Sprintf("bridge error %d: %s", e.Status, e.Message)
}

// request is a single agent operation. Attribute is a string for single
// reads, a []string for multi-attribute reads, or nil for version.
type request struct {
	Type      string `json:"type"`
	MBean     string `json:"mbean,omitempty"`
	Attribute any    `json:"attribute,omitempty"`
}

// response is the agent's envelope. Value is left raw until the caller
// knows its shape.
type response struct {
	Status int             `json:"status"`
	Value  json.RawMessage `json:"value"`
	Error  string          `json:"error,omitempty"`
}
