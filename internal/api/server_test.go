package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/lightfab/picroute/pkg/route"
)

func testServer() http.Handler {
	logger := charmlog.New(io.Discard)
	return NewServer(route.NewRunner(nil, logger), logger).Router()
}

func validRequest() map[string]any {
	return map[string]any{
		"bbox": map[string]float64{"min_x": 0, "min_y": 0, "max_x": 2000, "max_y": 1500},
		"ports": []map[string]any{
			{"name": "h1_e1", "center": map[string]float64{"x": 40, "y": 590}, "kind": "electrical"},
			{"name": "h1_e2", "center": map[string]float64{"x": 40, "y": 610}, "kind": "electrical"},
		},
		"netlist": map[string]any{
			"groups": []map[string]any{
				{"name": "heater_1", "ports": []string{"h1_e1", "h1_e2"}},
			},
		},
	}
}

func postRoute(t *testing.T, handler http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	testServer().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRouteEndpoint(t *testing.T) {
	w := postRoute(t, testServer(), validRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result route.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.BondPorts) != 1 || result.BondPorts[0].Name != "bondpad_heater_1" {
		t.Errorf("bond ports = %+v", result.BondPorts)
	}
	if len(result.Traces) != 3 {
		t.Errorf("traces = %d, want 3", len(result.Traces))
	}
	if result.RunID == "" {
		t.Error("RunID not set")
	}
}

func TestRouteEndpointRejects(t *testing.T) {
	handler := testServer()

	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantStatus int
	}{
		{
			"missing netlist",
			func(m map[string]any) { delete(m, "netlist") },
			http.StatusBadRequest,
		},
		{
			"duplicate port",
			func(m map[string]any) {
				ports := m["ports"].([]map[string]any)
				ports[1]["name"] = ports[0]["name"]
			},
			http.StatusBadRequest,
		},
		{
			"invalid params",
			func(m map[string]any) {
				m["params"] = map[string]any{
					"pads":    map[string]any{"size": 80.0, "pitch": 80.0},
					"routing": map[string]any{"trace_width": 15.0},
				}
			},
			http.StatusBadRequest,
		},
		{
			"nothing resolvable",
			func(m map[string]any) {
				m["netlist"] = map[string]any{
					"groups": []map[string]any{{"name": "g", "ports": []string{"nope"}}},
				}
			},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		req := validRequest()
		tt.mutate(req)
		w := postRoute(t, handler, req)
		if w.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d (body %s)", tt.name, w.Code, tt.wantStatus, w.Body.String())
		}
	}
}

func TestRouteEndpointMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	testServer().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}
