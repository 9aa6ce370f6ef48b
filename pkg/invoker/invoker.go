package invoker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/blinks/internal/logging"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/config"
	"github.com/aretw0/blinks/pkg/domain"
)

const (
	tracerName = "github.com/aretw0/blinks/pkg/invoker"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 8 << 20
)

// Actions resolves action names. *registry.Registry satisfies it.
type Actions interface {
	Lookup(name string) (catalog.Action, bool)
}

// Invoker executes catalog actions against the transaction-construction service.
type Invoker struct {
	actions   Actions
	clientKey string
	header    string
	timeout   time.Duration
	endpoints catalog.Endpoints

	client *http.Client
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates an Invoker. A nil cfg means config.Default().
func New(cfg *config.Config, actions Actions, opts ...Option) *Invoker {
	if cfg == nil {
		cfg = config.Default()
	}

	header := cfg.ClientKeyHeader
	if header == "" {
		header = config.DefaultClientKeyHeader
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	i := &Invoker{
		actions:   actions,
		clientKey: cfg.ClientKey,
		header:    header,
		timeout:   timeout,
		endpoints: cfg.CatalogEndpoints(),
		client:    &http.Client{},
		logger:    logging.NewNop(),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invoke validates req, builds the action URL and POSTs the account to it.
func (i *Invoker) Invoke(ctx context.Context, req domain.ActionRequest) domain.ActionResult {
	start := time.Now()
	action, found := i.actions.Lookup(req.Action)

	ev := &domain.InvocationEvent{
		ID:        uuid.NewString(),
		Type:      domain.EventInvoke,
		Timestamp: start,
		Action:    req.Action,
		Protocol:  action.Protocol,
		Account:   req.Account,
	}

	ctx, span := i.tracer.Start(ctx, "blinks.invoke",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("blinks.action", req.Action),
			attribute.String("blinks.invocation.id", ev.ID),
		),
	)
	defer span.End()

	if i.hooks.OnInvoke != nil {
		i.hooks.OnInvoke(ctx, ev)
	}

	var result domain.ActionResult
	if !found {
		result = domain.NewFailure(domain.KindValidation, fmt.Sprintf("%s: %s", domain.ErrUnknownAction, req.Action))
	} else {
		result = i.invoke(ctx, action, req, ev)
	}

	done := *ev
	done.Type = domain.EventResult
	done.Outcome = result.Outcome()
	done.Kind = result.Kind
	done.Error = result.Error
	done.Duration = time.Since(start)

	span.SetAttributes(
		attribute.String("blinks.protocol", done.Protocol),
		attribute.String("blinks.outcome", done.Outcome),
	)
	if result.Success {
		span.SetStatus(codes.Ok, "")
		i.logger.Debug("action invoked", "action", req.Action, "id", done.ID, "duration", done.Duration)
	} else {
		span.SetStatus(codes.Error, result.Error)
		i.logger.Warn("action failed",
			"action", req.Action,
			"id", done.ID,
			"kind", result.Kind,
			"error", result.Error,
		)
	}

	if i.hooks.OnResult != nil {
		i.hooks.OnResult(ctx, &done)
	}
	return result
}

func (i *Invoker) invoke(ctx context.Context, action catalog.Action, req domain.ActionRequest, ev *domain.InvocationEvent) domain.ActionResult {
	if i.clientKey == "" {
		return domain.NewFailure(domain.KindConfig, domain.ErrMissingCredential.Error())
	}
	if req.Account == "" {
		return domain.NewFailure(domain.KindValidation, domain.ErrMissingAccount.Error())
	}
	if err := action.Validate(req.Params); err != nil {
		return domain.NewFailure(domain.KindValidation, err.Error())
	}

	target, err := action.BuildURL(req.Params, i.endpoints)
	if err != nil {
		return unexpected(err)
	}
	ev.URL = target
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("url.full", target))

	return i.post(ctx, target, req.Account)
}

// BuildURL runs the validation steps of Invoke and returns the URL that would be
// called. It never performs a request and does not require a credential.
func (i *Invoker) BuildURL(req domain.ActionRequest) (string, error) {
	action, ok := i.actions.Lookup(req.Action)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownAction, req.Action)
	}
	if err := action.Validate(req.Params); err != nil {
		return "", err
	}
	return action.BuildURL(req.Params, i.endpoints)
}

type requestBody struct {
	Type    string `json:"type"`
	Account string `json:"account"`
}

func (i *Invoker) post(ctx context.Context, target, account string) domain.ActionResult {
	body, err := json.Marshal(requestBody{Type: "transaction", Account: account})
	if err != nil {
		return unexpected(err)
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return unexpected(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(i.header, i.clientKey)

	resp, err := i.client.Do(httpReq)
	if err != nil {
		return domain.NewFailure(domain.KindRemote, "API request failed: "+err.Error())
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	// A body cut short by the timeout or the peer is a transport failure.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.NewFailure(domain.KindRemote, "API request failed: "+err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewFailure(domain.KindRemote, "API error: "+errorMessage(resp, data))
	}

	payload, err := decodeObject(data)
	if err != nil {
		return unexpected(err)
	}
	return domain.NewSuccess(payload)
}

// decodeObject parses a JSON object, keeping numbers exact.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("invalid response body: not a JSON object")
	}
	return payload, nil
}

// errorMessage prefers the "error" field of a JSON body and falls back to the raw text.
func errorMessage(resp *http.Response, data []byte) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err == nil {
		switch v := body["error"].(type) {
		case nil:
		case string:
			return v
		default:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	return string(data)
}

func unexpected(err error) domain.ActionResult {
	return domain.NewFailure(domain.KindUnexpected, "Unexpected error: "+err.Error())
}
