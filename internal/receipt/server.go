package receipt

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/efekanoption-hub/FisTaray-c/internal/export"
)

// Server handles HTTP requests for profiles and receipts
type Server struct {
	service *Service
	config  Config
	csv     *export.Writer
	mux     *http.ServeMux
	handler http.Handler

	mu  sync.Mutex
	srv *http.Server
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// Config holds the HTTP surface settings
type Config struct {
	BasicAuth BasicAuth
	// AllowedOrigins defaults to every origin when empty.
	AllowedOrigins []string
	// CSVDelimiter separates exported columns. Spreadsheet apps with a
	// Turkish locale expect ';'.
	CSVDelimiter rune
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, config Config) *Server {
	return NewServerWithMux(service, config, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, config Config, mux *http.ServeMux) *Server {
	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// Browsers refuse credentials with a wildcard origin.
	credentials := !slices.Contains(origins, "*")

	s := &Server{
		service: service,
		config:  config,
		csv:     export.NewWriter(config.CSVDelimiter),
		mux:     mux,
	}
	s.registerRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: credentials,
		MaxAge:           3600,
	})
	s.handler = c.Handler(s.mux)
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	want := s.config.BasicAuth
	if want.Username == "" && want.Password == "" {
		return true // No auth required if not configured
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(want.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(want.Password)) == 1
	return userOK && passOK
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="CamFis"`)
			writeError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// Profiles
	s.mux.HandleFunc("GET /api/profiles", s.requireAuth(s.handleListProfiles))
	s.mux.HandleFunc("POST /api/profiles", s.requireAuth(s.handleCreateProfile))
	s.mux.HandleFunc("DELETE /api/profiles/{profileID}", s.requireAuth(s.handleDeleteProfile))

	// Receipts
	s.mux.HandleFunc("GET /api/profiles/{profileID}/receipts", s.requireAuth(s.handleListReceipts))
	s.mux.HandleFunc("POST /api/profiles/{profileID}/receipts", s.requireAuth(s.handleUploadReceipt))
	s.mux.HandleFunc("POST /api/profiles/{profileID}/receipts/text", s.requireAuth(s.handleRecordText))
	s.mux.HandleFunc("GET /api/profiles/{profileID}/receipts/{id}", s.requireAuth(s.handleGetReceipt))
	s.mux.HandleFunc("DELETE /api/profiles/{profileID}/receipts/{id}", s.requireAuth(s.handleDeleteReceipt))
	s.mux.HandleFunc("GET /api/profiles/{profileID}/receipts/{id}/export", s.requireAuth(s.handleExportReceipt))

	// Reports
	s.mux.HandleFunc("GET /api/profiles/{profileID}/export", s.requireAuth(s.handleExportHistory))
	s.mux.HandleFunc("GET /api/profiles/{profileID}/analysis", s.requireAuth(s.handleExportAnalysis))
	s.mux.HandleFunc("GET /api/profiles/{profileID}/summary", s.requireAuth(s.handleSummary))
}

// Handler returns the routes wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Start starts the HTTP server and blocks until it is shut down
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	slog.Info("Starting server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	slog.Info("Shutting down server")
	return srv.Shutdown(ctx)
}
