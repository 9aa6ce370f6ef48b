package invoker

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/config"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/registry"
)

const account = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

// endpoint is a simulated transaction-construction service.
type endpoint struct {
	*httptest.Server
	hits    atomic.Int64
	mu      sync.Mutex
	last    *http.Request
	body    []byte
	handler http.HandlerFunc
}

func newEndpoint(t *testing.T, handler http.HandlerFunc) *endpoint {
	t.Helper()
	e := &endpoint{handler: handler}
	e.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		e.mu.Lock()
		e.last, e.body = r, body
		e.mu.Unlock()
		e.handler(w, r)
	}))
	t.Cleanup(e.Close)
	return e
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// configFor points every protocol and the Blink API at the simulated endpoint.
func configFor(e *endpoint, key string) *config.Config {
	cfg := config.Default()
	cfg.ClientKey = key
	cfg.BlinkAPIURL = e.URL + "/blink"
	cfg.Endpoints = map[string]string{}
	for _, a := range catalog.Builtin() {
		cfg.Endpoints[a.Protocol] = e.URL + "/" + a.Protocol
	}
	return cfg
}

func exampleParams(a catalog.Action) map[string]any {
	params := map[string]any{}
	for _, p := range a.Params {
		params[p.Name] = p.Example
	}
	return params
}

func TestInvoke_MissingCredential_NoNetwork(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"ok":true}`))
	inv := New(configFor(e, ""), registry.NewDefault())

	for _, a := range catalog.Builtin() {
		res := inv.Invoke(context.Background(), domain.ActionRequest{
			Action:  a.Name,
			Params:  exampleParams(a),
			Account: account,
		})
		assert.False(t, res.Success, a.Name)
		assert.Equal(t, domain.KindConfig, res.Kind, a.Name)
		assert.Equal(t, "missing credential", res.Error, a.Name)
	}
	assert.Zero(t, e.hits.Load())
}

func TestInvoke_ValidationFailures_NoNetwork(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"ok":true}`))
	inv := New(configFor(e, "key"), registry.NewDefault())

	tests := []struct {
		name    string
		req     domain.ActionRequest
		wantMsg string
	}{
		{
			name:    "unknown action",
			req:     domain.ActionRequest{Action: "orca_swap", Account: account},
			wantMsg: "unknown action: orca_swap",
		},
		{
			name:    "missing account",
			req:     domain.ActionRequest{Action: "marginfi_supply", Params: map[string]any{"token": "USDC", "amount": 1}},
			wantMsg: "missing account",
		},
		{
			name:    "zero amount",
			req:     domain.ActionRequest{Action: "marginfi_supply", Params: map[string]any{"token": "USDC", "amount": 0}, Account: account},
			wantMsg: "invalid parameter amount: must be greater than 0 (got 0)",
		},
		{
			name:    "negative amount",
			req:     domain.ActionRequest{Action: "lulo_withdraw", Params: map[string]any{"symbol": "USDC", "amount": -5.0}, Account: account},
			wantMsg: "invalid parameter amount: must be greater than 0 (got -5)",
		},
		{
			name:    "percentage above 100",
			req:     domain.ActionRequest{Action: "meteora_remove_liquidity", Params: map[string]any{"dlmm_pool": "P", "amount": 150}, Account: account},
			wantMsg: "invalid parameter amount: must be at most 100 (got 150)",
		},
		{
			name: "price range inverted",
			req: domain.ActionRequest{Action: "raydium_create_position", Params: map[string]any{
				"pool_id": "P", "price_lower": 20, "price_upper": 10, "amount_a": 1, "amount_b": 1,
			}, Account: account},
			wantMsg: "invalid parameter price_lower: must be less than price_upper (got 20)",
		},
		{
			name: "leverage of one",
			req: domain.ActionRequest{Action: "jupiter_perps_open", Params: map[string]any{
				"position_type": "long", "paying_token": "USDC", "perp_token": "SOL", "amount": 10, "leverage": 1,
			}, Account: account},
			wantMsg: "invalid parameter leverage: must be greater than 1 (got 1)",
		},
		{
			name:    "missing parameter",
			req:     domain.ActionRequest{Action: "marginfi_supply", Params: map[string]any{"token": "USDC"}, Account: account},
			wantMsg: "invalid parameter amount: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := inv.Invoke(context.Background(), tt.req)
			assert.False(t, res.Success)
			assert.Equal(t, domain.KindValidation, res.Kind)
			assert.Equal(t, tt.wantMsg, res.Error)
		})
	}
	assert.Zero(t, e.hits.Load())
}

func TestInvoke_PreconditionOrder(t *testing.T) {
	inv := New(&config.Config{}, registry.NewDefault())

	res := inv.Invoke(context.Background(), domain.ActionRequest{Action: "nope"})
	assert.Equal(t, domain.KindValidation, res.Kind, "unknown action wins over missing credential")

	res = inv.Invoke(context.Background(), domain.ActionRequest{Action: "marginfi_supply"})
	assert.Equal(t, domain.KindConfig, res.Kind, "missing credential wins over account and params")
}

func TestInvoke_Success(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"ok":true}`))
	inv := New(configFor(e, "secret"), registry.NewDefault())

	res := inv.Invoke(context.Background(), domain.ActionRequest{
		Action:  "marginfi_supply",
		Params:  map[string]any{"token": "USDC", "amount": 100.0},
		Account: account,
	})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, map[string]any{"ok": true}, res.Result)
	assert.Equal(t, int64(1), e.hits.Load())

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, http.MethodPost, e.last.Method)
	assert.Equal(t, "/marginfi/supply/USDC/100", e.last.URL.Path)
	assert.Equal(t, "application/json", e.last.Header.Get("Content-Type"))
	assert.Equal(t, "secret", e.last.Header.Get("X-Blink-Client-Key"))
	assert.JSONEq(t, `{"type":"transaction","account":"`+account+`"}`, string(e.body))
}

func TestInvoke_SuccessKeepsNumbersExact(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"transaction":"AQAB","lamports":18446744073709551615}`))
	inv := New(configFor(e, "k"), registry.NewDefault())

	res := inv.Invoke(context.Background(), domain.ActionRequest{
		Action: "raydium_claim", Account: account,
	})
	require.True(t, res.Success, res.Error)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"result":{"transaction":"AQAB","lamports":18446744073709551615}}`, string(out))
}

func TestInvoke_CustomHeader(t *testing.T) {
	e := newEndpoint(t, respond(200, `{}`))
	cfg := configFor(e, "k")
	cfg.ClientKeyHeader = "X-Api-Key"

	res := New(cfg, registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
		Action: "jupiter_dao_claim", Account: account,
	})
	require.True(t, res.Success, res.Error)

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, "k", e.last.Header.Get("X-Api-Key"))
	assert.Empty(t, e.last.Header.Get("X-Blink-Client-Key"))
}

func TestInvoke_SwapGoesThroughBlinkAPI(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"transaction":"x"}`))
	inv := New(configFor(e, "k"), registry.NewDefault())

	res := inv.Invoke(context.Background(), domain.ActionRequest{
		Action:  "jupiter_swap",
		Params:  map[string]any{"token_in": "SOL", "token_out": "DARK", "amount": 0.1},
		Account: account,
	})
	require.True(t, res.Success, res.Error)

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Equal(t, "/blink", e.last.URL.Path)
	assert.Equal(t,
		e.URL+"/jupiter/swap/SOL-DARK/0.1?_bin=6874794c-513e-456f-801f-5957a82e068e",
		e.last.URL.Query().Get("apiUrl"),
	)
}

func TestInvoke_RemoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", 400, `{"error":"insufficient funds"}`, "API error: insufficient funds"},
		{"structured error field", 422, `{"error":{"code":7,"message":"bad mint"}}`, `API error: {"code":7,"message":"bad mint"}`},
		{"json without error field", 400, `{"message":"nope"}`, `API error: {"message":"nope"}`},
		{"raw body", 502, "upstream exploded", "API error: upstream exploded"},
		{"empty body", 500, "", "API error: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEndpoint(t, respond(tt.status, tt.body))
			res := New(configFor(e, "k"), registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
				Action:  "marginfi_withdraw",
				Params:  map[string]any{"token": "SOL", "amount": "1"},
				Account: account,
			})
			assert.False(t, res.Success)
			assert.Equal(t, domain.KindRemote, res.Kind)
			assert.Equal(t, tt.wantMsg, res.Error)
			assert.Equal(t, int64(1), e.hits.Load(), "no retries")
		})
	}
}

func TestInvoke_UnexpectedBodies(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `null`, `not json`, `"text"`} {
		t.Run(body, func(t *testing.T) {
			e := newEndpoint(t, respond(200, body))
			res := New(configFor(e, "k"), registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
				Action: "raydium_claim", Account: account,
			})
			assert.False(t, res.Success)
			assert.Equal(t, domain.KindUnexpected, res.Kind)
			assert.True(t, strings.HasPrefix(res.Error, "Unexpected error: "), res.Error)
		})
	}
}

func TestInvoke_Timeout(t *testing.T) {
	release := make(chan struct{})
	e := newEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	cfg := configFor(e, "k")
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	res := New(cfg, registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
		Action: "raydium_claim", Account: account,
	})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, res.Success)
	assert.Equal(t, domain.KindRemote, res.Kind)
	assert.True(t, strings.HasPrefix(res.Error, "API request failed: "), res.Error)
	assert.Equal(t, int64(1), e.hits.Load())
}

func TestInvoke_TimeoutWhileReadingBody(t *testing.T) {
	release := make(chan struct{})
	e := newEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":`))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	cfg := configFor(e, "k")
	cfg.Timeout = 100 * time.Millisecond

	start := time.Now()
	res := New(cfg, registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
		Action: "raydium_claim", Account: account,
	})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, res.Success)
	assert.Equal(t, domain.KindRemote, res.Kind)
	assert.True(t, strings.HasPrefix(res.Error, "API request failed: "), res.Error)
	assert.Contains(t, res.Error, "deadline exceeded")
}

func TestInvoke_ConnectionRefused(t *testing.T) {
	e := newEndpoint(t, respond(200, `{}`))
	cfg := configFor(e, "k")
	e.Close()

	res := New(cfg, registry.NewDefault()).Invoke(context.Background(), domain.ActionRequest{
		Action: "raydium_claim", Account: account,
	})
	assert.Equal(t, domain.KindRemote, res.Kind)
	assert.True(t, strings.HasPrefix(res.Error, "API request failed: "), res.Error)
}

func TestInvoke_CallerContextCancelled(t *testing.T) {
	e := newEndpoint(t, respond(200, `{}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(configFor(e, "k"), registry.NewDefault()).Invoke(ctx, domain.ActionRequest{
		Action: "raydium_claim", Account: account,
	})
	assert.Equal(t, domain.KindRemote, res.Kind)
	assert.Zero(t, e.hits.Load())
}

func TestInvoke_Hooks(t *testing.T) {
	e := newEndpoint(t, respond(400, `{"error":"insufficient funds"}`))

	var events []domain.InvocationEvent
	hooks := domain.LifecycleHooks{
		OnInvoke: func(_ context.Context, ev *domain.InvocationEvent) { events = append(events, *ev) },
		OnResult: func(_ context.Context, ev *domain.InvocationEvent) { events = append(events, *ev) },
	}
	var results int
	more := domain.LifecycleHooks{
		OnResult: func(context.Context, *domain.InvocationEvent) { results++ },
	}

	inv := New(configFor(e, "k"), registry.NewDefault(), WithHooks(hooks), WithHooks(more))
	inv.Invoke(context.Background(), domain.ActionRequest{
		Action: "raydium_stake", Params: map[string]any{"amount": 25}, Account: account,
	})

	require.Len(t, events, 2)
	assert.Equal(t, 1, results)

	started, done := events[0], events[1]
	assert.Equal(t, domain.EventInvoke, started.Type)
	assert.Equal(t, domain.EventResult, done.Type)
	assert.Equal(t, started.ID, done.ID)
	assert.NotEmpty(t, done.ID)
	assert.Equal(t, "raydium", done.Protocol)
	assert.Equal(t, account, done.Account)
	assert.Equal(t, e.URL+"/raydium/staking?action=stake&amount=25", done.URL)
	assert.Equal(t, "remote", done.Outcome)
	assert.Equal(t, domain.KindRemote, done.Kind)
	assert.Equal(t, "API error: insufficient funds", done.Error)
	assert.Positive(t, done.Duration)
}

func TestInvoke_Tracing(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"ok":true}`))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	inv := New(configFor(e, "k"), registry.NewDefault(), WithTracerProvider(tp))
	inv.Invoke(context.Background(), domain.ActionRequest{Action: "raydium_claim", Account: account})
	inv.Invoke(context.Background(), domain.ActionRequest{Action: "nope", Account: account})

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "blinks.invoke", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "unknown action: nope", spans[1].Status().Description)
}

func TestInvoke_Concurrent(t *testing.T) {
	e := newEndpoint(t, respond(200, `{"ok":true}`))
	inv := New(configFor(e, "k"), registry.NewDefault())

	var wg sync.WaitGroup
	var ok atomic.Int64
	for n := 0; n < 25; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := inv.Invoke(context.Background(), domain.ActionRequest{
				Action: "raydium_unstake", Params: map[string]any{"amount": 1}, Account: account,
			})
			if res.Success {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(25), ok.Load())
	assert.Equal(t, int64(25), e.hits.Load())
}

func TestBuildURL(t *testing.T) {
	e := newEndpoint(t, respond(200, `{}`))
	inv := New(configFor(e, ""), registry.NewDefault())

	u, err := inv.BuildURL(domain.ActionRequest{
		Action: "marginfi_supply",
		Params: map[string]any{"token": "USDC", "amount": 100},
	})
	require.NoError(t, err)
	assert.Equal(t, e.URL+"/marginfi/supply/USDC/100", u)

	_, err = inv.BuildURL(domain.ActionRequest{Action: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	_, err = inv.BuildURL(domain.ActionRequest{Action: "marginfi_supply", Params: map[string]any{"token": "USDC", "amount": -1}})
	assert.Error(t, err)

	assert.Zero(t, e.hits.Load())
}

func TestNew_DefaultsWithDefaultEndpoints(t *testing.T) {
	inv := New(nil, registry.NewDefault())
	u, err := inv.BuildURL(domain.ActionRequest{
		Action: "marginfi_supply",
		Params: map[string]any{"token": "USDC", "amount": 100.0},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://marginfi.dial.to/supply/USDC/100", u)
	assert.Equal(t, 30*time.Second, inv.timeout)
}
