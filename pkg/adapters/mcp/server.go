package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/blinks"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/domain"
)

// ActionsURI is the resource listing every registered action.
const ActionsURI = "blinks://actions"

// Invoker executes one action request.
type Invoker interface {
	Invoke(ctx context.Context, req domain.ActionRequest) domain.ActionResult
}

// Catalog lists the registered actions.
type Catalog interface {
	List() []catalog.Action
}

// Server exposes every registered action as an MCP tool.
type Server struct {
	invoker   Invoker
	catalog   Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
	tools     map[string]mcp.Tool
}

// NewServer creates a new MCP Server instance.
// The action set is captured at construction time.
func NewServer(invoker Invoker, actions Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		invoker: invoker,
		catalog: actions,
		logger:  logger,
		mcpServer: server.NewMCPServer("blinks", strings.TrimSpace(blinks.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
			server.WithRecovery(),
		),
		tools: make(map[string]mcp.Tool),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCPServer returns the underlying server, e.g. to mount it on another transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tool returns the tool definition registered for an action.
func (s *Server) Tool(name string) (mcp.Tool, bool) {
	t, ok := s.tools[name]
	return t, ok
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It returns when ctx is cancelled, after a graceful shutdown.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ActionsURI, "Registered actions",
		mcp.WithResourceDescription("Every callable action with its parameters and URL template"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(describe(s.catalog.List()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode actions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ActionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) registerPrompts() {
	byProtocol := make(map[string][]catalog.Action)
	var protocols []string
	for _, a := range s.catalog.List() {
		if _, ok := byProtocol[a.Protocol]; !ok {
			protocols = append(protocols, a.Protocol)
		}
		byProtocol[a.Protocol] = append(byProtocol[a.Protocol], a)
	}

	for _, protocol := range protocols {
		actions := byProtocol[protocol]
		description := fmt.Sprintf("Example requests for the %s actions", protocol)
		text := promptText(protocol, actions)

		s.mcpServer.AddPrompt(mcp.NewPrompt(protocol+"_examples",
			mcp.WithPromptDescription(description),
		), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			}), nil
		})
	}
}

func promptText(protocol string, actions []catalog.Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Things you can ask for on %s:\n", protocol)
	for _, a := range actions {
		fmt.Fprintf(&b, "\n%s: %s\n", a.Name, a.Description)
		for _, p := range a.Prompts {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	return b.String()
}

// ActionInfo is the JSON description of an action served as a resource.
type ActionInfo struct {
	Name        string      `json:"name"`
	Protocol    string      `json:"protocol"`
	Description string      `json:"description"`
	Template    string      `json:"template"`
	Params      []ParamInfo `json:"params"`
}

type ParamInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

func describe(actions []catalog.Action) []ActionInfo {
	out := make([]ActionInfo, 0, len(actions))
	for _, a := range actions {
		info := ActionInfo{
			Name:        a.Name,
			Protocol:    a.Protocol,
			Description: a.Description,
			Template:    a.Template,
			Params:      make([]ParamInfo, 0, len(a.Params)),
		}
		for _, p := range a.Params {
			info.Params = append(info.Params, ParamInfo{
				Name:        p.Name,
				Type:        p.TypeName(),
				Description: p.Description,
				Example:     p.Example,
			})
		}
		out = append(out, info)
	}
	return out
}
