package daemon

import "encoding/json"

// ProtocolVersion is bumped on incompatible changes to Request or Response
const ProtocolVersion = 1

// StatusCommand is answered by the server itself with a MetricsSnapshot
const StatusCommand = "status"

// Request is one newline-delimited JSON call sent by a client.
type Request struct {
	Version int             `json:"version,omitempty"`
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Input   json.RawMessage `json:"input,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID    string          `json:"id,omitempty"`
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}
