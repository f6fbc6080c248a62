package contract_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// rpcMock serves a fixed JSON-RPC result per method and records call counts.
// A value of type rpcErr is returned as a JSON-RPC error object.
type rpcMock struct {
	*httptest.Server
	mu    sync.Mutex
	calls map[string]int
}

type rpcErr struct {
	Code    int
	Message string
}

func newRPCMock(t *testing.T, responses map[string]any) *rpcMock {
	t.Helper()
	m := &rpcMock{calls: make(map[string]int)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		m.calls[req.Method]++
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch v := responses[req.Method].(type) {
		case nil:
			if _, ok := responses[req.Method]; ok {
				resp["result"] = nil
			} else {
				resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
			}
		case rpcErr:
			resp["error"] = map[string]any{"code": v.Code, "message": v.Message}
		default:
			resp["result"] = v
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *rpcMock) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}
