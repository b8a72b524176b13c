package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CallError is a failure reported by the daemon for one call.
type CallError struct {
	Command string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// Client performs calls against a running daemon. Calls are serialized on
// the single connection, so a Client is safe for concurrent use.
type Client struct {
	conn    net.Conn
	encoder *json.Encoder
	decoder *json.Decoder
	mu      sync.Mutex
}

// Dial connects to the daemon socket.
func Dial(ctx context.Context, socketPath string) (*Client, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon at %s: %w", socketPath, err)
	}
	return &Client{
		conn:    conn,
		encoder: json.NewEncoder(conn),
		decoder: json.NewDecoder(conn),
	}, nil
}

// Call sends command with input (any JSON-encodable value, or nil) and decodes
// the result into out when out is non-nil. A failed call returns *CallError.
func (c *Client) Call(ctx context.Context, command string, input, out any) error {
	raw, err := c.CallRaw(ctx, command, input)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", command, err)
	}
	return nil
}

// CallRaw is Call returning the undecoded result.
func (c *Client) CallRaw(ctx context.Context, command string, input any) (json.RawMessage, error) {
	req := Request{Version: ProtocolVersion, ID: uuid.NewString(), Command: command}
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s input: %w", command, err)
		}
		req.Input = data
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := c.encoder.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", command, err)
	}
	var resp Response
	if err := c.decoder.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", command, err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if !resp.OK {
		return nil, &CallError{Command: command, Message: resp.Error}
	}
	return resp.Data, nil
}

// Status returns the daemon's metrics.
func (c *Client) Status(ctx context.Context) (MetricsSnapshot, error) {
	var snap MetricsSnapshot
	err := c.Call(ctx, StatusCommand, nil, &snap)
	return snap, err
}

// Close closes the connection.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
