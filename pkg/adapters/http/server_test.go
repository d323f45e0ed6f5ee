package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endsWithA() *domain.MachineDefinition {
	return &domain.MachineDefinition{
		Name:   "ends-with-a",
		States: []string{"q0", "q1", "qa", "qr"},
		Start:  "q0",
		Accept: "qa",
		Reject: "qr",
		Rules: []domain.TransitionRule{
			{From: "q0", Read: "a", To: "q0", Write: "a", Move: domain.Right},
			{From: "q0", Read: "a", To: "q1", Write: "a", Move: domain.Right},
			{From: "q0", Read: "b", To: "q0", Write: "b", Move: domain.Right},
			{From: "q1", Read: "_", To: "qa", Write: "_", Move: domain.Right},
		},
	}
}

func newTestHandler(t *testing.T, opts ...tracetm.Option) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	opts = append([]tracetm.Option{tracetm.WithLifecycleHooks(metrics.Hooks())}, opts...)
	m := tracetm.NewFromDefinition(endsWithA(), opts...)

	h, err := NewHandler(m, WithGatherer(reg))
	require.NoError(t, err)
	return h, reg
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoadSpec_Validates(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/trace"))
	assert.Equal(t, "1.0.0", doc.Info.Version)
}

func TestTrace_Accepted(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/trace", `{"input":"ba","max_depth":20}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var record domain.TraceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, domain.VerdictAccepted, record.Report.Verdict)
	assert.Equal(t, 3, record.Report.AcceptDepth)
}

func TestTrace_SchemaRejectsBadRequests(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"Missing Depth", `{"input":"a"}`},
		{"Zero Depth", `{"input":"a","max_depth":0}`},
		{"Wrong Type", `{"input":1,"max_depth":3}`},
		{"Not JSON", `input=a`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/trace", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestTrace_InputSanitized(t *testing.T) {
	t.Setenv("TRACETM_MAX_INPUT_SIZE", "4")
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/trace", `{"input":"aaaaa","max_depth":3}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")
}

func TestMetrics_ExposeTraces(t *testing.T) {
	h, _ := newTestHandler(t)

	do(h, http.MethodPost, "/trace", `{"input":"ab","max_depth":20}`)
	w := do(h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tracetm_traces_total{machine="ends-with-a",verdict="rejected"} 1`)
}

func TestGetMachineAndGraph(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/machine", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"ends-with-a"`)

	w = do(h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR\n"))
	assert.NotContains(t, w.Body.String(), "classDef")

	w = do(h, http.MethodGet, "/graph?input=ba&max_depth=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class s2 current;")
}

func TestReports_WithoutStore(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/reports", "")

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestReports_RoundTrip(t *testing.T) {
	h, _ := newTestHandler(t,
		tracetm.WithStore(memory.NewStore()),
		tracetm.WithIDGenerator(func() string { return "r1" }),
	)

	do(h, http.MethodPost, "/trace", `{"input":"","max_depth":5}`)

	w := do(h, http.MethodGet, "/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["r1"]`, w.Body.String())

	w = do(h, http.MethodGet, "/reports/r1?format=text", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "String 1 input: _\n")
	assert.Contains(t, w.Body.String(), "String _ rejected in 0 transitions.\n")

	w = do(h, http.MethodGet, "/reports/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"r1"`)

	w = do(h, http.MethodGet, "/reports/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/reports/r1?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenAPIAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"openapi":"3.0.3"`)

	w = do(h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"`+tracetm.Version+`"`)

	w = do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscribeEvents_ReceivesTraces(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := tracetm.NewFromDefinition(endsWithA())
	h, err := NewHandler(m, WithGatherer(reg))
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	post, err := http.Post(srv.URL+"/trace", "application/json", strings.NewReader(`{"input":"a","max_depth":5}`))
	require.NoError(t, err)
	post.Body.Close()

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = lines.Text()
			break
		}
	}
	assert.Contains(t, data, `"verdict":"accepted"`)
}
