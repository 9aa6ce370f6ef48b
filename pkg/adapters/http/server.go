package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/blinks"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/ports"
)

// maxBodyBytes bounds invocation request bodies.
const maxBodyBytes = 1 << 20

// Invoker executes and previews action requests.
type Invoker interface {
	Invoke(ctx context.Context, req domain.ActionRequest) domain.ActionResult
	BuildURL(req domain.ActionRequest) (string, error)
}

// Catalog resolves registered actions.
type Catalog interface {
	Lookup(name string) (catalog.Action, bool)
	List() []catalog.Action
}

// Server is the HTTP gateway in front of the invoker.
type Server struct {
	invoker  Invoker
	catalog  Catalog
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	journal  ports.Journal
	spec     []byte
	router   chi.Router
}

type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithJournal exposes recent invocations on GET /invocations.
func WithJournal(j ports.Journal) Option {
	return func(s *Server) {
		s.journal = j
	}
}

// NewServer builds the router and the OpenAPI document of the registered actions.
func NewServer(invoker Invoker, actions Catalog, opts ...Option) (*Server, error) {
	s := &Server{
		invoker: invoker,
		catalog: actions,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := BuildSpec(context.Background(), actions.List())
	if err != nil {
		return nil, err
	}
	if s.spec, err = json.Marshal(doc); err != nil {
		return nil, fmt.Errorf("failed to encode openapi document: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.health)
	r.Get("/openapi.json", s.openapi)
	r.Route("/actions", func(r chi.Router) {
		r.Get("/", s.listActions)
		r.Get("/{name}", s.getAction)
		r.Post("/{name}", s.invoke)
		r.Post("/{name}/url", s.buildURL)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.journal != nil {
		r.Get("/invocations", s.recent)
	}

	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// InvokeRequest is the body of POST /actions/{name}.
type InvokeRequest struct {
	Account string         `json:"account"`
	Params  map[string]any `json:"params"`
}

// URLResponse is the body returned by POST /actions/{name}/url.
type URLResponse struct {
	URL string `json:"url"`
}

// StatusFor maps an invocation outcome to an HTTP status code.
func StatusFor(res domain.ActionResult) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindConfig:
		return http.StatusServiceUnavailable
	case domain.KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": blinks.Version,
	})
}

func (s *Server) openapi(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.spec)
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	protocol := r.URL.Query().Get("protocol")
	views := make([]ActionView, 0)
	for _, a := range s.catalog.List() {
		if protocol == "" || a.Protocol == protocol {
			views = append(views, newActionView(a))
		}
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) getAction(w http.ResponseWriter, r *http.Request) {
	a, msg, ok := s.lookup(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, msg)
		return
	}
	s.writeJSON(w, http.StatusOK, newActionView(a))
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	a, msg, ok := s.lookup(r)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, domain.NewFailure(domain.KindValidation, msg))
		return
	}

	body, err := decodeBody(w, r)
	if err != nil {
		s.logger.Warn("Invoke: Invalid request body", "action", a.Name, "error", err)
		s.writeJSON(w, http.StatusBadRequest, domain.NewFailure(domain.KindValidation, "invalid request body: "+err.Error()))
		return
	}

	res := s.invoker.Invoke(r.Context(), domain.ActionRequest{
		Action:  a.Name,
		Params:  body.Params,
		Account: body.Account,
	})
	s.writeJSON(w, StatusFor(res), res)
}

// decodeBody reads an InvokeRequest of at most maxBodyBytes, keeping numbers exact.
func decodeBody(w http.ResponseWriter, r *http.Request) (InvokeRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body InvokeRequest
	err := dec.Decode(&body)
	return body, err
}

func (s *Server) buildURL(w http.ResponseWriter, r *http.Request) {
	a, msg, ok := s.lookup(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, msg)
		return
	}

	body, err := decodeBody(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	u, err := s.invoker.BuildURL(domain.ActionRequest{Action: a.Name, Params: body.Params})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrUnknownAction) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, URLResponse{URL: u})
}

func (s *Server) recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("Journal read failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "journal unavailable")
		return
	}
	if entries == nil {
		entries = []domain.InvocationEvent{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) lookup(r *http.Request) (catalog.Action, string, bool) {
	name := chi.URLParam(r, "name")
	a, ok := s.catalog.Lookup(name)
	if !ok {
		return a, fmt.Sprintf("%s: %s", domain.ErrUnknownAction, name), false
	}
	return a, "", true
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}

// ActionView is the JSON description of an action.
type ActionView struct {
	Name        string      `json:"name"`
	Protocol    string      `json:"protocol"`
	Description string      `json:"description"`
	Template    string      `json:"template"`
	Params      []ParamView `json:"params"`
	Prompts     []string    `json:"prompts,omitempty"`
}

type ParamView struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

func newActionView(a catalog.Action) ActionView {
	v := ActionView{
		Name:        a.Name,
		Protocol:    a.Protocol,
		Description: a.Description,
		Template:    a.Template,
		Params:      make([]ParamView, 0, len(a.Params)),
		Prompts:     a.Prompts,
	}
	for _, p := range a.Params {
		v.Params = append(v.Params, ParamView{
			Name:        p.Name,
			Type:        p.TypeName(),
			Description: p.Description,
			Example:     p.Example,
		})
	}
	return v
}
