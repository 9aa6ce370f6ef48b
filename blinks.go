package blinks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/blinks/internal/logging"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/config"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/invoker"
	"github.com/aretw0/blinks/pkg/registry"
)

// Client is the high-level entry point for the blinks library.
// It wires the registry, the configuration and the invoker together.
type Client struct {
	cfg      *config.Config
	registry *registry.Registry
	invoker  *invoker.Invoker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	client   *http.Client
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLifecycleHooks registers observability hooks. Repeated calls chain the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRegistry replaces the default built-in registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Client) {
		c.registry = r
	}
}

// WithHTTPClient sets the client used for outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a Client. A nil cfg means config.Default().
// When cfg.ActionsFile is set, its actions are registered over the built-ins.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Client{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = registry.NewDefault()
	}

	if cfg.ActionsFile != "" {
		n, err := c.registry.RegisterFile(cfg.ActionsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load actions file: %w", err)
		}
		c.logger.Debug("Custom actions loaded", "path", cfg.ActionsFile, "count", n)
	}

	if !cfg.HasCredential() {
		c.logger.Warn("No client key configured; invocations will fail", "env", config.EnvClientKey)
	}

	invOpts := []invoker.Option{
		invoker.WithHooks(c.hooks),
		invoker.WithLogger(c.logger),
	}
	if c.client != nil {
		invOpts = append(invOpts, invoker.WithHTTPClient(c.client))
	}
	c.invoker = invoker.New(cfg, c.registry, invOpts...)

	return c, nil
}

// Invoke runs one action. See invoker.Invoker.Invoke.
func (c *Client) Invoke(ctx context.Context, req domain.ActionRequest) domain.ActionResult {
	return c.invoker.Invoke(ctx, req)
}

// BuildURL validates req and returns the URL Invoke would call, without calling it.
func (c *Client) BuildURL(req domain.ActionRequest) (string, error) {
	return c.invoker.BuildURL(req)
}

// Actions returns every registered action sorted by name.
func (c *Client) Actions() []catalog.Action {
	return c.registry.List()
}

// Registry exposes the action registry backing the client.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// Invoker exposes the underlying invoker, e.g. to mount it on a transport.
func (c *Client) Invoker() *invoker.Invoker {
	return c.invoker
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *config.Config {
	return c.cfg
}
