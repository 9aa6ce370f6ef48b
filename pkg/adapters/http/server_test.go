package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blinks/pkg/adapters/memory"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/config"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/invoker"
	"github.com/aretw0/blinks/pkg/observability"
	"github.com/aretw0/blinks/pkg/registry"
)

// upstream simulates the transaction-construction service.
func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, key string, up *httptest.Server, opts ...Option) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.ClientKey = key
	cfg.Endpoints = map[string]string{}
	for _, a := range catalog.Builtin() {
		cfg.Endpoints[a.Protocol] = up.URL
	}
	cfg.BlinkAPIURL = up.URL + "/blink"

	reg := registry.NewDefault()
	srv, err := NewServer(invoker.New(cfg, reg), reg, opts...)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) domain.ActionResult {
	t.Helper()
	var res domain.ActionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestHealth(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{}`))
	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestInvoke_StatusCodes(t *testing.T) {
	supply := `{"account":"wallet","params":{"token":"USDC","amount":100}}`

	tests := []struct {
		name       string
		key        string
		status     int
		upstream   string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"success", "k", 200, `{"transaction":"AQAB"}`, "/actions/marginfi_supply", supply, http.StatusOK, ""},
		{"remote", "k", 400, `{"error":"insufficient funds"}`, "/actions/marginfi_supply", supply, http.StatusBadGateway, "API error: insufficient funds"},
		{"config", "", 200, `{}`, "/actions/marginfi_supply", supply, http.StatusServiceUnavailable, "missing credential"},
		{"validation", "k", 200, `{}`, "/actions/marginfi_supply", `{"account":"wallet","params":{"token":"USDC","amount":0}}`, http.StatusUnprocessableEntity, "invalid parameter amount: must be greater than 0 (got 0)"},
		{"missing account", "k", 200, `{}`, "/actions/marginfi_supply", `{"params":{"token":"USDC","amount":1}}`, http.StatusUnprocessableEntity, "missing account"},
		{"unexpected", "k", 200, `[]`, "/actions/marginfi_supply", supply, http.StatusInternalServerError, ""},
		{"unknown", "k", 200, `{}`, "/actions/orca_swap", supply, http.StatusNotFound, "unknown action: orca_swap"},
		{"bad body", "k", 200, `{}`, "/actions/marginfi_supply", `{`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newGateway(t, tt.key, upstream(t, tt.status, tt.upstream))
			w := do(t, h, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			res := envelope(t, w)
			assert.Equal(t, tt.wantStatus == http.StatusOK, res.Success)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, res.Error)
			}
		})
	}
}

func TestInvoke_RelaysPayload(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{"transaction":"AQAB","message":"ok"}`))
	w := do(t, h, http.MethodPost, "/actions/raydium_claim", `{"account":"wallet"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"result":{"transaction":"AQAB","message":"ok"}}`, w.Body.String())
}

func TestBuildURL(t *testing.T) {
	up := upstream(t, 200, `{}`)
	h := newGateway(t, "", up)

	w := do(t, h, http.MethodPost, "/actions/marginfi_supply/url", `{"params":{"token":"USDC","amount":"100"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out URLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, up.URL+"/supply/USDC/100", out.URL)

	w = do(t, h, http.MethodPost, "/actions/marginfi_supply/url", `{"params":{"token":"USDC"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "amount: required")

	w = do(t, h, http.MethodPost, "/actions/nope/url", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildURL_ExactNumbers(t *testing.T) {
	up := upstream(t, 200, `{}`)
	h := newGateway(t, "", up)

	w := do(t, h, http.MethodPost, "/actions/marginfi_supply/url", `{"params":{"token":"USDC","amount":9007199254740993}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out URLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, up.URL+"/supply/USDC/9007199254740993", out.URL)
}

func TestInvoke_BodyTooLarge(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{}`))
	body := `{"account":"wallet","params":{"memo":"` + strings.Repeat("x", maxBodyBytes) + `"}}`

	w := do(t, h, http.MethodPost, "/actions/raydium_claim", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, envelope(t, w).Error, "invalid request body")

	w = do(t, h, http.MethodPost, "/actions/raydium_claim/url", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActions(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{}`))

	w := do(t, h, http.MethodGet, "/actions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []ActionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, len(catalog.Builtin()))

	w = do(t, h, http.MethodGet, "/actions?protocol=drift", "")
	var drift []ActionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drift))
	assert.Len(t, drift, 4)

	w = do(t, h, http.MethodGet, "/actions/raydium_create_position", "")
	require.Equal(t, http.StatusOK, w.Code)
	var one ActionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	assert.Equal(t, "raydium", one.Protocol)
	require.Len(t, one.Params, 5)
	assert.Equal(t, "positive", one.Params[1].Type)

	w = do(t, h, http.MethodGet, "/actions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenAPI(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{}`))
	w := do(t, h, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := openapi3.NewLoader().LoadFromData(w.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))

	op := doc.Paths.Value("/actions/meteora_remove_liquidity").Post
	require.NotNil(t, op)
	params := op.RequestBody.Value.Content.Get("application/json").Schema.Value.Properties["params"].Value
	amount := params.Properties["amount"].Value
	require.NotNil(t, amount.Max)
	assert.Equal(t, 100.0, *amount.Max)
	assert.ElementsMatch(t, []string{"dlmm_pool", "amount"}, params.Required)

	assert.NotNil(t, doc.Paths.Value("/actions/jupiter_swap/url"))
}

func TestMetricsAndJournal(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	journal := memory.NewJournal(10)

	up := upstream(t, 200, `{"ok":true}`)
	cfg := config.Default()
	cfg.ClientKey = "k"
	cfg.Endpoints = map[string]string{catalog.ProtocolRaydium: up.URL}

	hooks := metrics.Hooks().Merge(observability.JournalHooks(journal, nil))
	actions := registry.NewDefault()
	h, err := NewServer(invoker.New(cfg, actions, invoker.WithHooks(hooks)), actions,
		WithMetrics(reg), WithJournal(journal))
	require.NoError(t, err)

	w := do(t, h, http.MethodPost, "/actions/raydium_claim", `{"account":"wallet"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `blinks_invocations_total{action="raydium_claim",outcome="success"} 1`)

	w = do(t, h, http.MethodGet, "/invocations?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []domain.InvocationEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "raydium_claim", entries[0].Action)
	assert.Equal(t, "success", entries[0].Outcome)

	w = do(t, h, http.MethodGet, "/invocations?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionalRoutesDisabled(t *testing.T) {
	h := newGateway(t, "k", upstream(t, 200, `{}`))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/invocations", "").Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(domain.NewSuccess(nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(domain.ActionResult{}))
}
