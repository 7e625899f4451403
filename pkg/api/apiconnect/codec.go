// Package apiconnect wires the api messages to connect handlers and clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec encodes api messages as JSON. It registers under connect's "json"
// name, replacing the protobuf JSON codec, so requests use
// Content-Type: application/json.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// WithJSON is the connect option every handler and client of this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(Codec{})
}
