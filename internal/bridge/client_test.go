package bridge

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type agentRequest struct {
	Type      string `json:"type"`
	MBean     string `json:"mbean"`
	Attribute any    `json:"attribute"`
}

// newFakeAgent serves version requests plus reads answered from values,
// keyed by object name then attribute. Unknown objects answer 404 in the
// envelope, the way the real agent does.
func newFakeAgent(t *testing.T, values map[string]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req agentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Type {
		case "version":
			json.NewEncoder(w).Encode(map[string]any{"status": 200, "value": map[string]any{"agent": "2.1.0"}})
		case "read":
			attrs, ok := values[req.MBean]
			if !ok {
				json.NewEncoder(w).Encode(map[string]any{"status": 404, "error": "no such object: " + req.MBean})
				return
			}
			switch attr := req.Attribute.(type) {
			case string:
				v, ok := attrs[attr]
				if !ok {
					json.NewEncoder(w).Encode(map[string]any{"status": 404, "error": "no such attribute: " + attr})
					return
				}
				json.NewEncoder(w).Encode(map[string]any{"status": 200, "value": v})
			case []any:
				out := make(map[string]any, len(attr))
				for _, a := range attr {
					name := a.(string)
					if v, ok := attrs[name]; ok {
						out[name] = v
					}
				}
				json.NewEncoder(w).Encode(map[string]any{"status": 200, "value": out})
			default:
				json.NewEncoder(w).Encode(map[string]any{"status": 400, "error": "bad attribute"})
			}
		default:
			json.NewEncoder(w).Encode(map[string]any{"status": 400, "error": "unsupported operation"})
		}
	}))
}

func hostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func TestReadAttribute(t *testing.T) {
	agent := newFakeAgent(t, map[string]map[string]any{
		"org.apache.cassandra.metrics:type=Client,name=connectedNativeClients": {"Value": 42},
	})
	defer agent.Close()

	host, port := hostPort(t, agent.URL)
	client, err := NewClient(context.Background(), host, port, Credentials{}, Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, net.JoinHostPort(host, strconv.Itoa(port)), client.Target())

	value, err := client.ReadAttribute(context.Background(),
		"org.apache.cassandra.metrics:type=Client,name=connectedNativeClients", "Value")
	require.NoError(t, err)
	assert.Equal(t, float64(42), value)
}

func TestReadAttributes(t *testing.T) {
	agent := newFakeAgent(t, map[string]map[string]any{
		"org.apache.cassandra.metrics:type=ColumnFamily,keyspace=ks1,scope=users,name=ReadLatency": {
			"Count": 9000, "Max": 12.5, "Mean": 1.25, "Min": 0.1, "50thPercentile": 1.0, "99thPercentile": 9.9,
		},
	})
	defer agent.Close()

	host, port := hostPort(t, agent.URL)
	client, err := NewClient(context.Background(), host, port, Credentials{}, Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	values, err := client.ReadAttributes(context.Background(),
		"org.apache.cassandra.metrics:type=ColumnFamily,keyspace=ks1,scope=users,name=ReadLatency",
		"Count", "Max", "Mean")
	require.NoError(t, err)
	assert.Equal(t, float64(9000), values["Count"])
	assert.Equal(t, 12.5, values["Max"])
}

func TestReadUnknownObjectName(t *testing.T) {
	agent := newFakeAgent(t, nil)
	defer agent.Close()

	host, port := hostPort(t, agent.URL)
	client, err := NewClient(context.Background(), host, port, Credentials{}, Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.ReadAttribute(context.Background(), "no.such:type=Object", "Value")
	require.Error(t, err)

	bridgeErr, ok := err.(*BridgeError)
	require.True(t, ok, "expected *BridgeError, got %T", err)
	assert.Equal(t, 404, bridgeErr.Status)
	assert.Equal(t, "no.such:type=Object", bridgeErr.ObjectName)
}

func TestBasicAuthAndCorrelationHeaders(t *testing.T) {
	var sawAuth, sawRequestID bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		sawAuth = ok && user == "monitor" && pass == "secret"
		sawRequestID = r.Header.Get("X-Request-ID") != ""
		json.NewEncoder(w).Encode(map[string]any{"status": 200, "value": map[string]any{"agent": "2.1.0"}})
	}))
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	client, err := NewClient(context.Background(), host, port,
		Credentials{Username: "monitor", Password: "secret"},
		Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, sawAuth, "basic auth credentials not sent")
	assert.True(t, sawRequestID, "correlation id not sent")
}

func TestAuthenticationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	_, err := NewClient(context.Background(), host, port,
		Credentials{Username: "monitor", Password: "wrong"},
		Options{Timeout: 2 * time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestBlankCredentialPair(t *testing.T) {
	_, err := NewClient(context.Background(), "127.0.0.1", 8778, Credentials{Username: "monitor"}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither username nor password can be blank")
}

func TestConnectFailure(t *testing.T) {
	// Grab a free port and close it so nothing is listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	_, err = NewClient(context.Background(), "127.0.0.1", port, Credentials{}, Options{Timeout: 300 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to management agent")
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://10.0.0.5:8778/jolokia/", EndpointURL("10.0.0.5", 8778, false))
	assert.Equal(t, "https://cass-01.internal:8778/jolokia/", EndpointURL("cass-01.internal", 8778, true))
	// IPv6 hosts are bracketed
	assert.Equal(t, "http://[::1]:8778/jolokia/", EndpointURL("::1", 8778, false))
}
