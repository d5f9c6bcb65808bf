package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/njchilds90/symcanon"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(symcanon.NewCanonicalizer(), zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string, accept string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCanonicalize(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		result string
		errMsg string
	}{
		{"ok", `{"expr": "2.0*x + 2.0*y", "symbols": ["x", "y"]}`, http.StatusOK, "2*x + 2*y", ""},
		{"parse error", `{"expr": "x +* y", "symbols": ["x", "y"]}`, http.StatusBadRequest, "", "parse error"},
		{"unknown field", `{"expression": "x"}`, http.StatusBadRequest, "", "unknown field"},
		{"trailing data", `{"expr": "x", "symbols": ["x"]} {}`, http.StatusBadRequest, "", "trailing data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/canonicalize", tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			out := decodeJSON(t, resp)
			if tt.errMsg != "" {
				assert.Contains(t, out["error"], tt.errMsg)
				return
			}
			assert.Equal(t, tt.result, out["result"])
			assert.NotEmpty(t, out["latex"])
			assert.NotNil(t, out["tree"])
		})
	}
}

func TestCanonicalize_ParseErrorPosition(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/canonicalize", `{"expr": "x +* y", "symbols": ["x", "y"]}`, "")
	out := decodeJSON(t, resp)
	assert.Equal(t, float64(3), out["pos"])
}

func TestCanonicalize_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/canonicalize")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCanonicalize_BodyLimit(t *testing.T) {
	srv := New(symcanon.NewCanonicalizer(), zap.NewNop())
	body := `{"expr": "` + strings.Repeat("x+", maxBodyBytes) + `x", "symbols": ["x"]}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/canonicalize", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body too large")
}

func TestTool(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/tool", `{"tool": "canonicalize", "params": {"expr": "x + x", "symbols": ["x"]}}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	assert.Equal(t, "2*x", out["string"])

	resp = post(t, ts.URL+"/tool", `{"tool": "integrate", "params": {}}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decodeJSON(t, resp)
	assert.Contains(t, out["error"], "unknown tool")
}

func TestProtobufResponse(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/canonicalize", `{"expr": "x^2 + 1.0", "symbols": ["x"]}`, protobufType)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, protobufType, resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var st structpb.Struct
	require.NoError(t, proto.Unmarshal(raw, &st))
	assert.Equal(t, "x**2 + 1", st.GetFields()["result"].GetStringValue())

	tree := st.GetFields()["tree"].GetStructValue()
	require.NotNil(t, tree)
	e, err := symcanon.FromProto(tree)
	require.NoError(t, err)
	assert.Equal(t, "x**2 + 1", e.String())
}

func TestSchemaAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	out := decodeJSON(t, resp)
	assert.NotEmpty(t, out["tools"])

	resp2, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	out = decodeJSON(t, resp2)
	assert.Equal(t, "ok", out["status"])
}

func TestHandler_RecoversPanics(t *testing.T) {
	srv := New(symcanon.NewCanonicalizer(), nil)
	srv.mux.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	srv := New(symcanon.NewCanonicalizer(), zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr, Timeouts{Read: time.Second, Write: time.Second}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
