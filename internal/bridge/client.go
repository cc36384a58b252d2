package bridge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultTimeout for bridge connections
	DefaultTimeout = 30 * time.Second

	agentPath = "/jolokia/"
)

// Options control transport behaviour of the bridge client.
type Options struct {
	UseTLS             bool
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Client talks to a node's HTTP management agent. It implements Reader.
type Client struct {
	baseURL string
	target  string
	creds   Credentials
	httpc   *http.Client
}

var _ Reader = (*Client)(nil)

// NewClient opens a management session against the agent on host:port.
// The endpoint is verified with a version request before the client is
// handed back, so connection failures surface here rather than on the
// first metric read. Transient dial failures are retried with capped
// exponential backoff within the configured timeout.
func NewClient(ctx context.Context, host string, port int, creds Credentials, opts Options) (*Client, error) {
	if (creds.Username == "") != (creds.Password == "") {
		return nil, fmt.Errorf("neither username nor password can be blank")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.UseTLS && opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &Client{
		baseURL: EndpointURL(host, port, opts.UseTLS),
		target:  net.JoinHostPort(host, strconv.Itoa(port)),
		creds:   creds,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}

	backoff := retry.WithMaxDuration(timeout, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := c.execute(ctx, request{Type: "version"})
		if err != nil {
			// Agent answered: the endpoint is reachable, do not retry.
			var bridgeErr *BridgeError
			if errors.As(err, &bridgeErr) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to management agent at %s: %w", c.target, err)
	}

	return c, nil
}

// EndpointURL builds the agent base URL. IPv6 hosts are bracketed.
func EndpointURL(host string, port int, useTLS bool) string {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(port)), agentPath)
}

// ReadAttribute reads a single attribute of the named object.
func (c *Client) ReadAttribute(ctx context.Context, objectName, attribute string) (any, error) {
	resp, err := c.read(ctx, objectName, attribute)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(resp.Value, &value); err != nil {
		return nil, fmt.Errorf("failed to decode value of %s %s: %w", objectName, attribute, err)
	}
	return value, nil
}

// ReadAttributes reads several attributes of the named object in one
// round trip.
func (c *Client) ReadAttributes(ctx context.Context, objectName string, attributes ...string) (map[string]any, error) {
	resp, err := c.read(ctx, objectName, attributes)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(attributes))
	if err := json.Unmarshal(resp.Value, &values); err != nil {
		return nil, fmt.Errorf("failed to decode values of %s: %w", objectName, err)
	}
	return values, nil
}

// Target returns the host:port this client is connected to.
func (c *Client) Target() string {
	return c.target
}

// Close releases idle connections. The bridge is request/response over
// HTTP, there is no session teardown to perform on the agent side.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

func (c *Client) read(ctx context.Context, objectName string, attribute any) (*response, error) {
	resp, err := c.execute(ctx, request{Type: "read", MBean: objectName, Attribute: attribute})
	if err != nil {
		var bridgeErr *BridgeError
		if errors.As(err, &bridgeErr) {
			bridgeErr.ObjectName = objectName
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) execute(ctx context.Context, req request) (*response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds.Username != "" {
		httpReq.SetBasicAuth(c.creds.Username, c.creds.Password)
	}

	httpResp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.target, err)
	}
	defer httpResp.Body.Close()

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return nil, &BridgeError{Status: httpResp.StatusCode, Message: "authentication failed"}
	case httpResp.StatusCode != http.StatusOK:
		return nil, &BridgeError{Status: httpResp.StatusCode, Message: "unexpected HTTP status from agent"}
	}

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	if resp.Status != http.StatusOK {
		msg := resp.Error
		if msg == "" {
			msg = "agent reported failure"
		}
		return nil, &BridgeError{Status: resp.Status, Message: msg}
	}

	return &resp, nil
}
